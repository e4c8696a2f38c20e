// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tilecrm-backend/metrics"
	"tilecrm-backend/models"
	"tilecrm-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// MessageSender delivers a reminder text and returns the provider's id.
type MessageSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioSender sends over WhatsApp when the recipient is in E.164 form and
// over SMS otherwise.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func Channel(to string) string {
	if strings.HasPrefix(to, "+") {
		return "whatsapp"
	}
	return "sms"
}

func (t *TwilioSender) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if Channel(to) == "whatsapp" {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + t.from)
	} else {
		params.SetTo(to)
		params.SetFrom(t.from)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

type ReminderService struct {
	db       *gorm.DB
	sender   MessageSender
	notifyTo string
	now      func() time.Time
	cron     *cron.Cron
}

// NewReminderService builds the service. sender may be nil, in which case
// reminders can be stored and listed but never sent.
func NewReminderService(db *gorm.DB, sender MessageSender, notifyTo string) *ReminderService {
	return &ReminderService{db: db, sender: sender, notifyTo: notifyTo, now: time.Now}
}

func (s *ReminderService) Create(ctx context.Context, customerID uuid.UUID, r *models.Reminder) error {
	r.CustomerID = customerID
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return utils.ValidationErrors{"title": "Title is required"}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, "id = ?", customerID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("create reminder: %w", err)
		}
		return nil
	})
}

func (s *ReminderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("remind_at").Order("created_at").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (s *ReminderService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Reminder{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Start runs SendDueReminders on the given cron schedule until Stop.
func (s *ReminderService) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		sent, err := s.SendDueReminders(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("reminder run failed")
			return
		}
		log.Info().Int("sent", sent).Msg("reminder run completed")
	})
	if err != nil {
		return fmt.Errorf("schedule reminders %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c
	log.Info().Str("schedule", schedule).Msg("Reminder scheduler started")
	return nil
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// SendDueReminders notifies about every reminder whose time has come and that
// has not been sent yet. Each attempt is logged; only successful ones mark
// the reminder as notified, so failures are retried on the next run.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	if s.sender == nil {
		return 0, errors.New("no message sender configured")
	}
	now := s.now()

	var due []models.Reminder
	err := s.db.WithContext(ctx).
		Where("notified_at IS NULL AND remind_at IS NOT NULL AND remind_at <= ?", now).
		Order("remind_at").
		Find(&due).Error
	if err != nil {
		return 0, fmt.Errorf("find due reminders: %w", err)
	}

	sent := 0
	for i := range due {
		r := &due[i]

		var customer models.Customer
		if err := s.db.WithContext(ctx).First(&customer, "id = ?", r.CustomerID).Error; err != nil {
			log.Warn().Err(err).Str("reminder", r.ID.String()).Msg("skipping reminder without customer")
			continue
		}

		message := reminderMessage(r, &customer)
		entry := models.ReminderLog{
			ReminderID: r.ID,
			CustomerID: r.CustomerID,
			Message:    message,
			Channel:    Channel(s.notifyTo),
			SentAt:     now,
		}

		sid, err := s.sender.Send(ctx, s.notifyTo, message)
		if err != nil {
			log.Error().Err(err).Str("reminder", r.ID.String()).Msg("Failed to send reminder")
			entry.Status = "failed"
			entry.ErrorMessage = err.Error()
		} else {
			entry.Status = "sent"
			entry.ProviderSID = sid
		}
		metrics.RemindersSent.WithLabelValues(entry.Status).Inc()

		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			log.Error().Err(err).Str("reminder", r.ID.String()).Msg("Failed to log reminder")
		}
		if entry.Status != "sent" {
			continue
		}
		if err := s.db.WithContext(ctx).Model(r).Update("notified_at", now).Error; err != nil {
			return sent, fmt.Errorf("mark reminder %s notified: %w", r.ID, err)
		}
		sent++
	}
	return sent, nil
}

func reminderMessage(r *models.Reminder, c *models.Customer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reminder: %s", r.Title)
	fmt.Fprintf(&b, "\nCustomer: %s (%s)", c.Name, c.Mobile)
	if r.Note != "" {
		fmt.Fprintf(&b, "\n%s", r.Note)
	}
	return b.String()
}

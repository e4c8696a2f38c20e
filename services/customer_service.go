package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"tilecrm-backend/models"
	"tilecrm-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerFilter narrows ListCustomers. Only Search reaches the store; the
// other filters and the sort run in memory.
type CustomerFilter struct {
	Search        string
	Type          string
	Status        string
	City          string
	State         string
	From          *time.Time
	To            *time.Time
	SortBy        string
	SortDirection string
}

// sortableTime orders lexically the same as chronologically.
const sortableTime = "2006-01-02T15:04:05.000000000"

var customerSortKeys = map[string]func(c *models.Customer) string{
	"name":      func(c *models.Customer) string { return c.Name },
	"type":      func(c *models.Customer) string { return c.Type },
	"mobile":    func(c *models.Customer) string { return c.Mobile },
	"city":      func(c *models.Customer) string { return c.City },
	"district":  func(c *models.Customer) string { return c.District },
	"state":     func(c *models.Customer) string { return c.State },
	"status":    func(c *models.Customer) string { return c.Status },
	"reference": func(c *models.Customer) string { return c.Reference },
	"date": func(c *models.Customer) string {
		if c.Date == nil {
			return ""
		}
		return c.Date.UTC().Format(sortableTime)
	},
}

func IsCustomerSortKey(key string) bool {
	_, ok := customerSortKeys[key]
	return ok
}

type CustomerService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db, now: time.Now}
}

// Create stores a new customer and registers its city and state in the
// usage index within the same transaction.
func (s *CustomerService) Create(ctx context.Context, c *models.Customer) error {
	if errs := utils.ValidateCustomer(c); !errs.Valid() {
		return errs
	}
	if c.Date == nil {
		now := s.now()
		c.Date = &now
	}
	c.TotalAmount = 0

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		if err := ensureLocation(tx, "city", c.City); err != nil {
			return err
		}
		return ensureLocation(tx, "state", c.State)
	})
}

// Update loads the customer, applies fn, validates and saves. A changed
// city or state moves the usage index along with it.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, fn func(c *models.Customer)) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		oldCity, oldState := customer.City, customer.State

		fn(&customer)
		customer.ID = id
		if errs := utils.ValidateCustomer(&customer); !errs.Valid() {
			return errs
		}
		if err := tx.Save(&customer).Error; err != nil {
			return fmt.Errorf("update customer: %w", err)
		}

		if oldCity != customer.City {
			if err := ensureLocation(tx, "city", customer.City); err != nil {
				return err
			}
			if err := pruneLocation(tx, "city", oldCity); err != nil {
				return err
			}
		}
		if oldState != customer.State {
			if err := ensureLocation(tx, "state", customer.State); err != nil {
				return err
			}
			if err := pruneLocation(tx, "state", oldState); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.fillTotals(ctx, []*models.Customer{&customer}); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete removes the customer and drops city/state index rows nobody uses
// anymore. Orders are left in place.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}
		if err := pruneLocation(tx, "city", customer.City); err != nil {
			return err
		}
		return pruneLocation(tx, "state", customer.State)
	})
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.fillTotals(ctx, []*models.Customer{&customer}); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) List(ctx context.Context, f CustomerFilter) ([]models.Customer, error) {
	q := s.db.WithContext(ctx).Model(&models.Customer{})
	if f.Search != "" {
		q = q.Where("name LIKE ? ESCAPE '\\'", escapeLike(f.Search)+"%")
	}
	var all []models.Customer
	if err := q.Order("created_at").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]models.Customer, 0, len(all))
	for _, c := range all {
		if matches(&c, f) {
			customers = append(customers, c)
		}
	}

	if key, ok := customerSortKeys[f.SortBy]; ok {
		desc := strings.EqualFold(f.SortDirection, "desc")
		sort.SliceStable(customers, func(i, j int) bool {
			a := strings.ToLower(key(&customers[i]))
			b := strings.ToLower(key(&customers[j]))
			if desc {
				return a > b
			}
			return a < b
		})
	}

	ptrs := make([]*models.Customer, len(customers))
	for i := range customers {
		ptrs[i] = &customers[i]
	}
	if err := s.fillTotals(ctx, ptrs); err != nil {
		return nil, err
	}
	return customers, nil
}

func matches(c *models.Customer, f CustomerFilter) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.City != "" && c.City != f.City {
		return false
	}
	if f.State != "" && c.State != f.State {
		return false
	}
	if f.From != nil || f.To != nil {
		if c.Date == nil {
			return false
		}
		if f.From != nil && c.Date.Before(*f.From) {
			return false
		}
		if f.To != nil && c.Date.After(*f.To) {
			return false
		}
	}
	return true
}

func (s *CustomerService) ListCities(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.City{}).Order("name").Pluck("name", &names).Error
	return names, err
}

func (s *CustomerService) ListStates(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.State{}).Order("name").Pluck("name", &names).Error
	return names, err
}

// fillTotals derives TotalAmount from the customers' current orders.
func (s *CustomerService) fillTotals(ctx context.Context, customers []*models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}

	var rows []struct {
		CustomerID uuid.UUID
		Total      float64
	}
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("customer_id, COALESCE(SUM(amount), 0) AS total").
		Where("customer_id IN ?", ids).
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("sum order amounts: %w", err)
	}

	totals := make(map[uuid.UUID]float64, len(rows))
	for _, r := range rows {
		totals[r.CustomerID] = r.Total
	}
	for _, c := range customers {
		c.TotalAmount = totals[c.ID]
	}
	return nil
}

func locationRow(column, name string) any {
	if column == "city" {
		return &models.City{Name: name}
	}
	return &models.State{Name: name}
}

func ensureLocation(tx *gorm.DB, column, name string) error {
	if name == "" {
		return nil
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(locationRow(column, name)).Error; err != nil {
		return fmt.Errorf("ensure %s %q: %w", column, name, err)
	}
	return nil
}

// pruneLocation deletes the index row for name once no customer uses it.
func pruneLocation(tx *gorm.DB, column, name string) error {
	if name == "" {
		return nil
	}
	var users int64
	if err := tx.Model(&models.Customer{}).Where(column+" = ?", name).Count(&users).Error; err != nil {
		return fmt.Errorf("count %s users: %w", column, err)
	}
	if users > 0 {
		return nil
	}
	if err := tx.Where("name = ?", name).Delete(locationRow(column, "")).Error; err != nil {
		return fmt.Errorf("prune %s %q: %w", column, name, err)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

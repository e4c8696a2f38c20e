package services

import (
	"context"
	"fmt"
	"time"

	"tilecrm-backend/models"

	"gorm.io/gorm"
)

type Count struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DashboardOverview struct {
	TotalCustomers    int64             `json:"totalCustomers"`
	CustomersByStatus []Count           `json:"customersByStatus"`
	CustomersByType   []Count           `json:"customersByType"`
	MonthlyCustomers  int64             `json:"monthlyCustomers"`
	TotalOrders       int64             `json:"totalOrders"`
	TotalOrderAmount  float64           `json:"totalOrderAmount"`
	InvoicedTotal     float64           `json:"invoicedTotal"`
	RecentCustomers   []models.Customer `json:"recentCustomers"`
	UpcomingReminders []models.Reminder `json:"upcomingReminders"`
}

const dashboardListSize = 5

type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := &DashboardOverview{
		RecentCustomers:   []models.Customer{},
		UpcomingReminders: []models.Reminder{},
	}

	if err := db.Model(&models.Customer{}).Count(&out.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	byStatus, err := countBy(db, "status")
	if err != nil {
		return nil, err
	}
	out.CustomersByStatus = byStatus
	byType, err := countBy(db, "type")
	if err != nil {
		return nil, err
	}
	out.CustomersByType = byType

	if err := db.Model(&models.Customer{}).Where("date >= ?", firstOfMonth).Count(&out.MonthlyCustomers).Error; err != nil {
		return nil, fmt.Errorf("count monthly customers: %w", err)
	}

	var orderSums struct {
		Orders   int64
		Amount   float64
		Invoiced float64
	}
	err = db.Model(&models.Order{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(CASE WHEN invoiced THEN total_amount ELSE 0 END), 0) AS invoiced").
		Scan(&orderSums).Error
	if err != nil {
		return nil, fmt.Errorf("sum orders: %w", err)
	}
	out.TotalOrders = orderSums.Orders
	out.TotalOrderAmount = orderSums.Amount
	out.InvoicedTotal = orderSums.Invoiced

	if err := db.Order("created_at DESC").Limit(dashboardListSize).Find(&out.RecentCustomers).Error; err != nil {
		return nil, fmt.Errorf("recent customers: %w", err)
	}
	err = db.Where("notified_at IS NULL AND remind_at >= ?", now).
		Order("remind_at").Limit(dashboardListSize).
		Find(&out.UpcomingReminders).Error
	if err != nil {
		return nil, fmt.Errorf("upcoming reminders: %w", err)
	}
	return out, nil
}

func countBy(db *gorm.DB, column string) ([]Count, error) {
	var counts []Count
	err := db.Model(&models.Customer{}).
		Select(column + " AS name, COUNT(*) AS count").
		Group(column).Order(column).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count customers by %s: %w", column, err)
	}
	return counts, nil
}

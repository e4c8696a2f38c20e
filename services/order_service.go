package services

import (
	"context"
	"errors"
	"fmt"

	"tilecrm-backend/billing"
	"tilecrm-backend/models"
	"tilecrm-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create adds an order to an existing customer. When SrNo is zero it gets the
// next number within the customer's orders for the same company.
func (s *OrderService) Create(ctx context.Context, customerID uuid.UUID, o *models.Order) error {
	o.CustomerID = customerID
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if errs := utils.ValidateOrder(o); !errs.Valid() {
		return errs
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, "id = ?", customerID).Error; err != nil {
			return notFound(err)
		}
		if err := requireCompany(tx, o.CompanyID); err != nil {
			return err
		}
		if o.SrNo == 0 {
			var last int
			err := tx.Model(&models.Order{}).
				Select("COALESCE(MAX(sr_no), 0)").
				Where("customer_id = ? AND company_id = ?", customerID, o.CompanyID).
				Scan(&last).Error
			if err != nil {
				return fmt.Errorf("next sr no: %w", err)
			}
			o.SrNo = last + 1
		}
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
}

// Update applies fn to the stored order. An invoiced order has its figures
// recomputed from the new fields.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, fn func(o *models.Order)) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		customerID, companyID := order.CustomerID, order.CompanyID

		fn(&order)
		order.ID = id
		order.CustomerID = customerID
		if errs := utils.ValidateOrder(&order); !errs.Valid() {
			return errs
		}
		if order.CompanyID != companyID {
			if err := requireCompany(tx, order.CompanyID); err != nil {
				return err
			}
		}
		if order.Invoiced {
			applyFigures(&order, billing.Compute(LineFromOrder(&order), ParamsFromOrder(&order).WithDefaults()))
		}
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func requireCompany(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.Company{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check company: %w", err)
	}
	if n == 0 {
		return utils.ValidationErrors{"companyId": "Unknown company"}
	}
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// ListByCustomer returns the customer's orders, oldest first. An unknown
// customer yields ErrNotFound rather than an empty list.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Select("id").First(&customer, "id = ?", customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return listOrders(s.db.WithContext(ctx), customerID)
}

func listOrders(db *gorm.DB, customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("customer_id = ?", customerID).
		Order("created_at").Order("sr_no").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ParamsFromOrder is the working copy of an order's stored invoice params.
// Absent fields stay nil.
func ParamsFromOrder(o *models.Order) billing.Params {
	return billing.Params{
		Sqft:     o.Sqft,
		Rate:     o.Rate,
		BillRate: o.BillRate,
		Insu:     o.Insu,
		Tax:      o.Tax,
	}
}

func LineFromOrder(o *models.Order) billing.Line {
	return billing.Line{Size: o.Size, BoxNumber: float64(o.BoxNumber)}
}

func applyFigures(o *models.Order, f billing.Figures) {
	o.BillAmount = f.BillAmount
	o.CashRate = f.CashRate
	o.CashAmount = f.CashAmount
	o.TotalAmount = f.TotalAmount
}

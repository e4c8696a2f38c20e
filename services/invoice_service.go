package services

import (
	"context"
	"fmt"

	"tilecrm-backend/billing"
	"tilecrm-backend/metrics"
	"tilecrm-backend/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ViewMode selects which params an invoice view is computed with.
type ViewMode int

const (
	// WorkingCopy fills absent params with the invoice defaults, the way the
	// editing grid shows them.
	WorkingCopy ViewMode = iota
	// Persisted uses only what is stored; absent params count as zero.
	Persisted
)

// UnknownCompany labels orders whose company no longer exists.
const UnknownCompany = "-"

type InvoiceRow struct {
	Order   models.Order    `json:"order"`
	Params  billing.Params  `json:"params"`
	Figures billing.Figures `json:"figures"`
}

type CompanyInvoice struct {
	CompanyID   uuid.UUID      `json:"companyId"`
	CompanyName string         `json:"companyName"`
	Rows        []InvoiceRow   `json:"rows"`
	Totals      billing.Totals `json:"totals"`
	FinalTotal  float64        `json:"finalTotal"`
}

type InvoiceView struct {
	Customer    *models.Customer `json:"customer"`
	Companies   []CompanyInvoice `json:"companies"`
	GrandTotals billing.Totals   `json:"grandTotals"`
	FinalTotal  float64          `json:"finalTotal"`
}

// SaveResult is the outcome of saving one order of an invoice batch.
type SaveResult struct {
	OrderID uuid.UUID        `json:"orderId"`
	OK      bool             `json:"ok"`
	Error   string           `json:"error,omitempty"`
	Figures *billing.Figures `json:"figures,omitempty"`
}

type InvoiceService struct {
	db        *gorm.DB
	customers *CustomerService
}

func NewInvoiceService(db *gorm.DB, customers *CustomerService) *InvoiceService {
	return &InvoiceService{db: db, customers: customers}
}

// Load builds the invoice of one customer: their orders grouped by company in
// first-seen order, with per-company and grand totals.
func (s *InvoiceService) Load(ctx context.Context, customerID uuid.UUID, mode ViewMode) (*InvoiceView, error) {
	var (
		customer  *models.Customer
		orders    []models.Order
		companies []models.Company
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.customers.Get(gctx, customerID)
		customer = c
		return err
	})
	g.Go(func() error {
		o, err := listOrders(s.db.WithContext(gctx), customerID)
		orders = o
		return err
	})
	g.Go(func() error {
		if err := s.db.WithContext(gctx).Find(&companies).Error; err != nil {
			return fmt.Errorf("load companies: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}

	view := &InvoiceView{Customer: customer, Companies: []CompanyInvoice{}}
	keys, groups := GroupByCompany(orders)
	var all []billing.Totals
	for _, key := range keys {
		group := groups[key]
		ci := CompanyInvoice{CompanyID: group[0].CompanyID, CompanyName: UnknownCompany}
		if name, ok := names[ci.CompanyID]; ok {
			ci.CompanyName = name
		}

		items := make([]billing.Item, 0, len(group))
		for _, o := range group {
			params := ParamsFromOrder(&o)
			if mode == WorkingCopy {
				params = params.WithDefaults()
			}
			line := LineFromOrder(&o)
			items = append(items, billing.Item{Line: line, Params: params})
			ci.Rows = append(ci.Rows, InvoiceRow{Order: o, Params: params, Figures: billing.Compute(line, params)})
		}
		ci.Totals = billing.CompanyTotals(items)
		ci.FinalTotal = ci.Totals.FinalTotal()
		all = append(all, ci.Totals)
		view.Companies = append(view.Companies, ci)
	}
	view.GrandTotals = billing.GrandTotals(all)
	view.FinalTotal = view.GrandTotals.FinalTotal()
	return view, nil
}

// GroupByCompany buckets orders by company id, keeping first-seen order.
func GroupByCompany(orders []models.Order) ([]string, map[string][]models.Order) {
	return billing.GroupBy(orders, func(o models.Order) string { return o.CompanyID.String() })
}

// Save recomputes and persists every order of the customer. Each order's
// stored params are overlaid with its entry in overrides, then defaulted.
// Orders are saved independently; a failure on one does not stop the rest.
// Overrides naming orders the customer does not have come back as failures.
func (s *InvoiceService) Save(ctx context.Context, customerID uuid.UUID, overrides map[uuid.UUID]billing.Params) ([]SaveResult, error) {
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	orders, err := listOrders(s.db.WithContext(ctx), customerID)
	if err != nil {
		return nil, err
	}

	results := make([]SaveResult, 0, len(orders))
	seen := make(map[uuid.UUID]bool, len(orders))
	for i := range orders {
		o := &orders[i]
		seen[o.ID] = true

		params := ParamsFromOrder(o).Merge(overrides[o.ID]).WithDefaults()
		figures := billing.Compute(LineFromOrder(o), params)
		o.Sqft, o.Rate, o.BillRate, o.Insu, o.Tax = params.Sqft, params.Rate, params.BillRate, params.Insu, params.Tax
		applyFigures(o, figures)
		o.Invoiced = true

		if err := s.db.WithContext(ctx).Save(o).Error; err != nil {
			results = append(results, failed(o.ID, fmt.Errorf("save order: %w", err)))
			continue
		}
		metrics.InvoiceOrderSaves.WithLabelValues("ok").Inc()
		results = append(results, SaveResult{OrderID: o.ID, OK: true, Figures: &figures})
	}

	for id := range overrides {
		if !seen[id] {
			results = append(results, failed(id, ErrNotFound))
		}
	}
	return results, nil
}

func failed(id uuid.UUID, err error) SaveResult {
	metrics.InvoiceOrderSaves.WithLabelValues("failed").Inc()
	return SaveResult{OrderID: id, Error: err.Error()}
}

// AllSaved reports whether every result in a batch succeeded.
func AllSaved(results []SaveResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

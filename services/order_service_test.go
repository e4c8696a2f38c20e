package services

import (
	"context"
	"testing"

	"tilecrm-backend/billing"
	"tilecrm-backend/models"
	"tilecrm-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderAssignsSrNoPerCompany(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := NewCustomerService(db)
	orders := NewOrderService(db)
	catalog := NewCatalogService(db)

	c := seedCustomer(t, customers, "John Builders", "Pune", "Maharashtra")
	kajaria, _, err := catalog.CreateCompany(ctx, "Kajaria")
	require.NoError(t, err)
	somany, _, err := catalog.CreateCompany(ctx, "Somany")
	require.NoError(t, err)

	o1 := seedOrder(t, orders, c, kajaria, "600x600", 10, 100)
	o2 := seedOrder(t, orders, c, kajaria, "16x16", 4, 100)
	o3 := seedOrder(t, orders, c, somany, "12x18", 2, 100)

	assert.Equal(t, 1, o1.SrNo)
	assert.Equal(t, 2, o2.SrNo)
	assert.Equal(t, 1, o3.SrNo)
	assert.Equal(t, models.OrderStatusPending, o1.Status)

	list, err := orders.ListByCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCreateOrderErrors(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	orders := NewOrderService(db)
	c := seedCustomer(t, NewCustomerService(db), "John Builders", "Pune", "Maharashtra")

	err := orders.Create(ctx, uuid.New(), &models.Order{Name: "Tile", Size: "600x600", Amount: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	err = orders.Create(ctx, c.ID, &models.Order{Size: "7x7", Amount: -1, BoxNumber: -2})
	var verrs utils.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, utils.ValidationErrors{
		"name":      "Product name is required",
		"size":      "Invalid tile size",
		"amount":    "Amount cannot be negative",
		"boxNumber": "Box number cannot be negative",
	}, verrs)

	_, err = orders.ListByCustomer(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, orders.Delete(ctx, uuid.New()), ErrNotFound)
}

func TestUpdateInvoicedOrderRecomputes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customers := NewCustomerService(db)
	orders := NewOrderService(db)
	invoices := NewInvoiceService(db, customers)

	c := seedCustomer(t, customers, "John Builders", "Pune", "Maharashtra")
	kajaria, _, err := NewCatalogService(db).CreateCompany(ctx, "Kajaria")
	require.NoError(t, err)
	o := seedOrder(t, orders, c, kajaria, "600x600", 10, 100)

	_, err = invoices.Save(ctx, c.ID, map[uuid.UUID]billing.Params{
		o.ID: {BillRate: billing.Float(50), Rate: billing.Float(60)},
	})
	require.NoError(t, err)

	updated, err := orders.Update(ctx, o.ID, func(o *models.Order) { o.BoxNumber = 20 })
	require.NoError(t, err)
	assert.InDelta(t, 32671.545, updated.BillAmount, 1e-6)
	assert.InDelta(t, 20*27.55*10, updated.CashAmount, 1e-6)
	assert.Equal(t, c.ID, updated.CustomerID)
}

func TestOrderRequiresKnownCompany(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	orders := NewOrderService(db)
	c := seedCustomer(t, NewCustomerService(db), "John Builders", "Pune", "Maharashtra")
	kajaria, _, err := NewCatalogService(db).CreateCompany(ctx, "Kajaria")
	require.NoError(t, err)

	err = orders.Create(ctx, c.ID, &models.Order{CompanyID: uuid.New(), Name: "Tile", Size: "600x600", Amount: 10})
	var verrs utils.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, utils.ValidationErrors{"companyId": "Unknown company"}, verrs)

	list, err := orders.ListByCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	o := seedOrder(t, orders, c, kajaria, "600x600", 10, 100)

	_, err = orders.Update(ctx, o.ID, func(o *models.Order) { o.CompanyID = uuid.New() })
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "companyId")

	stored, err := orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, kajaria.ID, stored.CompanyID)

	updated, err := orders.Update(ctx, o.ID, func(o *models.Order) { o.Name = "Glossy" })
	require.NoError(t, err)
	assert.Equal(t, "Glossy", updated.Name)
}

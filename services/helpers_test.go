package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tilecrm-backend/config"
	"tilecrm-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	return &t
}

func seedCustomer(t *testing.T, s *CustomerService, name, city, state string) *models.Customer {
	t.Helper()
	c := &models.Customer{
		Name:   name,
		Type:   models.CustomerTypeBuilder,
		Mobile: "9876543210",
		City:   city,
		State:  state,
		Status: "meet",
	}
	require.NoError(t, s.Create(context.Background(), c))
	return c
}

func seedOrder(t *testing.T, s *OrderService, customer *models.Customer, company *models.Company, size string, boxes int, amount float64) *models.Order {
	t.Helper()
	o := &models.Order{
		CompanyID: company.ID,
		Name:      "Tile " + size,
		Size:      size,
		Grade:     "PRE",
		BoxNumber: boxes,
		Amount:    amount,
	}
	require.NoError(t, s.Create(context.Background(), customer.ID, o))
	return o
}

// seedOrphanOrder stores an order whose company is not in the catalog, the way
// imported data can look.
func seedOrphanOrder(t *testing.T, db *gorm.DB, customer *models.Customer, size string, boxes int, amount float64) *models.Order {
	t.Helper()
	o := &models.Order{
		CustomerID: customer.ID,
		CompanyID:  uuid.New(),
		SrNo:       1,
		Name:       "Tile " + size,
		Size:       size,
		Grade:      "PRE",
		BoxNumber:  boxes,
		Amount:     amount,
		Status:     models.OrderStatusPending,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var TileSizes = []string{
	"12x18",
	"16x16",
	"600x600",
	"200x1200",
	"600x1200",
	"800x1600",
	"1200x1800",
	"800x2400",
	"800x3000",
}

var Grades = []string{"PRE", "STD"}

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

var OrderStatuses = []string{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}

type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`

	SrNo      int     `json:"srNo"`
	Name      string  `gorm:"not null" json:"name"`
	Size      string  `gorm:"type:varchar(20)" json:"size"`
	Grade     string  `gorm:"type:varchar(10)" json:"grade"`
	BoxNumber int     `gorm:"default:0" json:"boxNumber"`
	Amount    float64 `gorm:"default:0" json:"amount"`
	Status    string  `gorm:"type:varchar(20)" json:"status"`

	// Invoice parameters. Nil until set by an invoice edit.
	Sqft     *float64 `json:"sqft"`
	Rate     *float64 `json:"rate"`
	BillRate *float64 `json:"billRate"`
	Insu     *float64 `json:"insu"`
	Tax      *float64 `json:"tax"`

	// Written by the invoice save path.
	BillAmount  float64 `gorm:"default:0" json:"billAmount"`
	CashRate    float64 `gorm:"default:0" json:"cashRate"`
	CashAmount  float64 `gorm:"default:0" json:"cashAmount"`
	TotalAmount float64 `gorm:"default:0" json:"totalAmount"`
	Invoiced    bool    `gorm:"default:false" json:"invoiced"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

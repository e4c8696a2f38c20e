package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CustomerTypeBuilder  = "BUILDER"
	CustomerTypeBungalow = "BUNGLOW"
)

var CustomerTypes = []string{CustomerTypeBuilder, CustomerTypeBungalow}

// Customer workflow statuses.
var CustomerStatuses = []string{"meet", "negotiation", "closed"}

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name          string     `gorm:"not null;index" json:"name"`
	Type          string     `gorm:"type:varchar(20);not null" json:"type"`
	Mobile        string     `gorm:"not null" json:"mobile"`
	PartnerMobile string     `json:"partnerMobile,omitempty"`
	PanCard       string     `gorm:"type:varchar(10)" json:"panCard,omitempty"`
	Aadhar        string     `gorm:"type:varchar(12)" json:"aadhar,omitempty"`
	GSTNumber     string     `json:"gstNumber,omitempty"`
	City          string     `gorm:"index" json:"city"`
	District      string     `json:"district"`
	State         string     `gorm:"index" json:"state"`
	Address       string     `json:"address"`
	Date          *time.Time `json:"date"`
	VisitFactory  *time.Time `json:"visitFactory,omitempty"`
	Status        string     `gorm:"type:varchar(20)" json:"status"`
	Reference     string     `json:"reference"`
	Note          string     `gorm:"type:text" json:"note"`

	// TotalAmount is the sum of the customer's order amounts. It is
	// computed on read and never stored.
	TotalAmount float64 `gorm:"-" json:"totalAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

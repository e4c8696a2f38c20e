package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a tile manufacturer or distributor that orders are placed with.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// Reference is an entry in the lookup list of lead sources.
type Reference struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Reference) TableName() string { return "references" }

func (r *Reference) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// City and State rows exist only while at least one customer uses the name.
type City struct {
	Name string `gorm:"primaryKey" json:"name"`
}

type State struct {
	Name string `gorm:"primaryKey" json:"name"`
}

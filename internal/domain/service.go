package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service is a tenant-owned catalog entry. Price is in minor currency
// units; CommissionRate is an integer percentage 0-100. Appointments
// snapshot both at creation, so edits here never rewrite history.
type Service struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	Name           string    `gorm:"not null;column:name" json:"name"`
	Category       string    `gorm:"column:category" json:"category"`
	Price          int       `gorm:"not null;column:price" json:"price"`
	CommissionRate int       `gorm:"not null;column:commission_rate" json:"commission_rate"`
	Active         bool      `gorm:"not null;column:active" json:"active"`
	Description    string    `gorm:"type:text;column:description" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is one isolated salon/barbershop business. Code is the short
// human-shareable join code professionals supply at registration; it is
// unique and never changes after creation.
type Tenant struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"not null;column:name" json:"name"`
	Code             string    `gorm:"size:12;uniqueIndex;not null;column:code" json:"code"`
	ManagerAccountID uuid.UUID `gorm:"type:uuid;not null;column:manager_account_id" json:"manager_account_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Tenant) TableName() string { return "tenants" }

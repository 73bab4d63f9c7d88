package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a login identity. Every professional belongs to exactly one
// tenant; a manager owns the tenant it created.
type Account struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password        string     `gorm:"not null;column:password" json:"-"`
	FirstName       string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName        string     `gorm:"column:last_name" json:"last_name"`
	Phone           string     `gorm:"column:phone" json:"phone"`
	Role            Role       `gorm:"size:16;not null;column:role" json:"role"`
	TenantID        *uuid.UUID `gorm:"type:uuid;index;column:tenant_id" json:"tenant_id"`
	ProfileImageURL string     `gorm:"column:profile_image_url" json:"profile_image_url"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appointment records one performed service and its payment. Price and
// CommissionRate are snapshotted from the Service at creation time. The
// unique index on transaction_id is the correctness guarantee for
// duplicate submissions; the intake pipeline's lookup is only a pre-check.
// PossibleDuplicate is advisory and never blocks creation.
type Appointment struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID     `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	ProfessionalID uuid.UUID     `gorm:"type:uuid;index;not null;column:professional_id" json:"professional_id"`
	ServiceID      uuid.UUID     `gorm:"type:uuid;not null;column:service_id" json:"service_id"`
	Date           time.Time     `gorm:"index;not null;column:date" json:"date"`
	CustomerName   string        `gorm:"not null;column:customer_name" json:"customer_name"`
	Price          int           `gorm:"not null;column:price" json:"price"`
	CommissionRate int           `gorm:"not null;column:commission_rate" json:"commission_rate"`
	PaymentMethod  PaymentMethod `gorm:"size:8;not null;column:payment_method" json:"payment_method"`

	TransactionID *string `gorm:"uniqueIndex;column:transaction_id" json:"transaction_id"`
	ProofURL      string  `gorm:"type:text;column:proof_url" json:"proof_url"`
	ProofHash     string  `gorm:"index;column:proof_hash" json:"proof_hash"`

	Status            AppointmentStatus `gorm:"size:16;not null;column:status" json:"status"`
	PossibleDuplicate bool              `gorm:"not null;column:possible_duplicate" json:"possible_duplicate"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }

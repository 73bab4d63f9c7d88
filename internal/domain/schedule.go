package domain

import (
	"time"

	"github.com/google/uuid"
)

// Availability is a weekly recurring working window for a professional.
// Weekday follows time.Weekday (0 = Sunday).
type Availability struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null;column:professional_id" json:"professional_id"`
	Weekday        int       `gorm:"not null;column:weekday" json:"weekday"`
	StartTime      string    `gorm:"size:5;not null;column:start_time" json:"start_time"`
	EndTime        string    `gorm:"size:5;not null;column:end_time" json:"end_time"`
	Active         bool      `gorm:"not null;column:active" json:"active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Availability) TableName() string { return "professional_availability" }

// ScheduleBlock carves time out of a professional's availability.
type ScheduleBlock struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null;column:professional_id" json:"professional_id"`
	StartAt        time.Time `gorm:"not null;column:start_at" json:"start_at"`
	EndAt          time.Time `gorm:"not null;column:end_at" json:"end_at"`
	Reason         string    `gorm:"column:reason" json:"reason"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ScheduleBlock) TableName() string { return "schedule_blocks" }

// AppointmentRequest is a customer-initiated booking request, pending a
// professional's or manager's decision.
type AppointmentRequest struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID     `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	ProfessionalID *uuid.UUID    `gorm:"type:uuid;index;column:professional_id" json:"professional_id"`
	ServiceID      *uuid.UUID    `gorm:"type:uuid;column:service_id" json:"service_id"`
	CustomerName   string        `gorm:"not null;column:customer_name" json:"customer_name"`
	CustomerPhone  string        `gorm:"not null;column:customer_phone" json:"customer_phone"`
	RequestedAt    time.Time     `gorm:"not null;column:requested_at" json:"requested_at"`
	Status         RequestStatus `gorm:"size:16;not null;column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (AppointmentRequest) TableName() string { return "appointment_requests" }

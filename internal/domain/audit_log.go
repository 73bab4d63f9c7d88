package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogEntry is an immutable record of a privileged action. Rows are
// written in the same transaction as the state change they describe and
// are never updated or deleted.
type AuditLogEntry struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	ActorID       uuid.UUID      `gorm:"type:uuid;not null;column:actor_id" json:"actor_id"`
	AppointmentID *uuid.UUID     `gorm:"type:uuid;column:appointment_id" json:"appointment_id"`
	Action        string         `gorm:"size:64;not null;column:action" json:"action"`
	Metadata      datatypes.JSON `gorm:"column:metadata" json:"metadata"`

	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
}

func (AuditLogEntry) TableName() string { return "audit_logs" }

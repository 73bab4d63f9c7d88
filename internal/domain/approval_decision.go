package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalDecision is the append-only history behind Profile.Approval.
// Every manager decision adds a row, including idempotent re-approvals.
type ApprovalDecision struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID      `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	ProfessionalID uuid.UUID      `gorm:"type:uuid;index;not null;column:professional_id" json:"professional_id"`
	ManagerID      uuid.UUID      `gorm:"type:uuid;not null;column:manager_id" json:"manager_id"`
	Action         ApprovalAction `gorm:"size:16;not null;column:action" json:"action"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ApprovalDecision) TableName() string { return "approval_decisions" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile extends an Account with approval lifecycle state. Created at
// registration and never deleted while the account exists. The approval
// fields always carry the deciding manager and a timestamp; a fresh decision
// clears the opposite side's timestamp.
type Profile struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID  uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null;column:account_id" json:"account_id"`
	CPF        string        `gorm:"column:cpf" json:"cpf"`
	IsVerified bool          `gorm:"not null;column:is_verified" json:"is_verified"`
	Approval   ApprovalState `gorm:"size:24;not null;column:approval_state" json:"approval_state"`

	ApprovedByID *uuid.UUID `gorm:"type:uuid;column:approved_by_id" json:"approved_by_id"`
	ApprovedAt   *time.Time `gorm:"column:approved_at" json:"approved_at"`
	RejectedByID *uuid.UUID `gorm:"type:uuid;column:rejected_by_id" json:"rejected_by_id"`
	RejectedAt   *time.Time `gorm:"column:rejected_at" json:"rejected_at"`

	OnDuty bool `gorm:"not null;column:on_duty" json:"on_duty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

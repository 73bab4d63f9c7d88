package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error)
	GetByAccountIDs(ctx context.Context, tx *gorm.DB, accountIDs []uuid.UUID) ([]*types.Profile, error)
	SetApproval(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, state types.ApprovalState, deciderID uuid.UUID, at time.Time) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(profiles) == 0 {
		return []*types.Profile{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (pr *profileRepo) GetByAccountIDs(ctx context.Context, tx *gorm.DB, accountIDs []uuid.UUID) ([]*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Profile
	if len(accountIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SetApproval writes the current approval state plus decider/timestamp, and
// clears the opposite side's fields so only the latest decision is visible
// on the profile. History lives in approval_decisions.
func (pr *profileRepo) SetApproval(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, state types.ApprovalState, deciderID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	updates := map[string]any{"approval_state": state}
	switch state {
	case types.ApprovalActive:
		updates["approved_by_id"] = deciderID
		updates["approved_at"] = at
		updates["rejected_by_id"] = nil
		updates["rejected_at"] = nil
	case types.ApprovalRejected:
		updates["rejected_by_id"] = deciderID
		updates["rejected_at"] = at
		updates["approved_by_id"] = nil
		updates["approved_at"] = nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("account_id = ?", accountID).
		Updates(updates).Error
}

package approval

import (
	"context"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ApprovalDecisionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, decisions []*types.ApprovalDecision) ([]*types.ApprovalDecision, error)
	ListByProfessional(ctx context.Context, tx *gorm.DB, professionalID uuid.UUID) ([]*types.ApprovalDecision, error)
}

type approvalDecisionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApprovalDecisionRepo(db *gorm.DB, baseLog *logger.Logger) ApprovalDecisionRepo {
	return &approvalDecisionRepo{db: db, log: baseLog.With("repo", "ApprovalDecisionRepo")}
}

func (ar *approvalDecisionRepo) Create(ctx context.Context, tx *gorm.DB, decisions []*types.ApprovalDecision) ([]*types.ApprovalDecision, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(decisions) == 0 {
		return []*types.ApprovalDecision{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

func (ar *approvalDecisionRepo) ListByProfessional(ctx context.Context, tx *gorm.DB, professionalID uuid.UUID) ([]*types.ApprovalDecision, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.ApprovalDecision
	if err := transaction.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package media

import (
	"context"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type MediaUploadRepo interface {
	Create(ctx context.Context, tx *gorm.DB, uploads []*types.MediaUpload) ([]*types.MediaUpload, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.MediaUpload, error)
}

type mediaUploadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaUploadRepo(db *gorm.DB, baseLog *logger.Logger) MediaUploadRepo {
	return &mediaUploadRepo{db: db, log: baseLog.With("repo", "MediaUploadRepo")}
}

func (mr *mediaUploadRepo) Create(ctx context.Context, tx *gorm.DB, uploads []*types.MediaUpload) ([]*types.MediaUpload, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(uploads) == 0 {
		return []*types.MediaUpload{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (mr *mediaUploadRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.MediaUpload, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MediaUpload
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package tenant

import (
	"context"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type TenantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tenants []*types.Tenant) ([]*types.Tenant, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tenantIDs []uuid.UUID) ([]*types.Tenant, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Tenant, error)
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
}

type tenantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTenantRepo(db *gorm.DB, baseLog *logger.Logger) TenantRepo {
	return &tenantRepo{db: db, log: baseLog.With("repo", "TenantRepo")}
}

func (tr *tenantRepo) Create(ctx context.Context, tx *gorm.DB, tenants []*types.Tenant) ([]*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tenants) == 0 {
		return []*types.Tenant{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

func (tr *tenantRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tenantIDs []uuid.UUID) ([]*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tenant
	if len(tenantIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", tenantIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tenantRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tenant
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (tr *tenantRepo) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Tenant{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

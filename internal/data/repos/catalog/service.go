package catalog

import (
	"context"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ServiceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, services []*types.Service) ([]*types.Service, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, serviceIDs []uuid.UUID) ([]*types.Service, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Service, error)
	Update(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) error
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	return &serviceRepo{db: db, log: baseLog.With("repo", "ServiceRepo")}
}

func (sr *serviceRepo) Create(ctx context.Context, tx *gorm.DB, services []*types.Service) ([]*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(services) == 0 {
		return []*types.Service{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (sr *serviceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, serviceIDs []uuid.UUID) ([]*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Service
	if len(serviceIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", serviceIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *serviceRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Service
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *serviceRepo) Update(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Service{}).
		Where("id = ?", serviceID).
		Updates(updates).Error
}

func (sr *serviceRepo) Delete(ctx context.Context, tx *gorm.DB, serviceID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", serviceID).
		Delete(&types.Service{}).Error
}

package schedule

import (
	"context"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ScheduleRepo interface {
	CreateAvailability(ctx context.Context, tx *gorm.DB, rows []*types.Availability) ([]*types.Availability, error)
	ListAvailability(ctx context.Context, tx *gorm.DB, tenantID, professionalID uuid.UUID) ([]*types.Availability, error)

	CreateBlocks(ctx context.Context, tx *gorm.DB, rows []*types.ScheduleBlock) ([]*types.ScheduleBlock, error)
	ListBlocks(ctx context.Context, tx *gorm.DB, tenantID, professionalID uuid.UUID) ([]*types.ScheduleBlock, error)

	CreateRequests(ctx context.Context, tx *gorm.DB, rows []*types.AppointmentRequest) ([]*types.AppointmentRequest, error)
	ListRequests(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.AppointmentRequest, error)
	GetRequestByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.AppointmentRequest, error)
	UpdateRequestStatus(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status types.RequestStatus) error
}

type scheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScheduleRepo(db *gorm.DB, baseLog *logger.Logger) ScheduleRepo {
	return &scheduleRepo{db: db, log: baseLog.With("repo", "ScheduleRepo")}
}

func (sr *scheduleRepo) CreateAvailability(ctx context.Context, tx *gorm.DB, rows []*types.Availability) ([]*types.Availability, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(rows) == 0 {
		return []*types.Availability{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (sr *scheduleRepo) ListAvailability(ctx context.Context, tx *gorm.DB, tenantID, professionalID uuid.UUID) ([]*types.Availability, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	query := transaction.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if professionalID != uuid.Nil {
		query = query.Where("professional_id = ?", professionalID)
	}
	var results []*types.Availability
	if err := query.Order("weekday").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scheduleRepo) CreateBlocks(ctx context.Context, tx *gorm.DB, rows []*types.ScheduleBlock) ([]*types.ScheduleBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(rows) == 0 {
		return []*types.ScheduleBlock{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (sr *scheduleRepo) ListBlocks(ctx context.Context, tx *gorm.DB, tenantID, professionalID uuid.UUID) ([]*types.ScheduleBlock, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	query := transaction.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if professionalID != uuid.Nil {
		query = query.Where("professional_id = ?", professionalID)
	}
	var results []*types.ScheduleBlock
	if err := query.Order("start_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scheduleRepo) CreateRequests(ctx context.Context, tx *gorm.DB, rows []*types.AppointmentRequest) ([]*types.AppointmentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(rows) == 0 {
		return []*types.AppointmentRequest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (sr *scheduleRepo) ListRequests(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.AppointmentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.AppointmentRequest
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("requested_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scheduleRepo) GetRequestByIDs(ctx context.Context, tx *gorm.DB, requestIDs []uuid.UUID) ([]*types.AppointmentRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.AppointmentRequest
	if len(requestIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", requestIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scheduleRepo) UpdateRequestStatus(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, status types.RequestStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AppointmentRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error
}

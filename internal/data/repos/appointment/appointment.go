package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// ListFilter narrows ListByTenant. Zero values mean "no constraint".
type ListFilter struct {
	ProfessionalID uuid.UUID
	Start          time.Time
	End            time.Time
}

type AppointmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, appointments []*types.Appointment) ([]*types.Appointment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, appointmentIDs []uuid.UUID) ([]*types.Appointment, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filter ListFilter) ([]*types.Appointment, error)
	TransactionIDExists(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, transactionID string) (bool, error)
	ProofHashExists(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, proofHash string) (bool, error)
	ListSamePriceSince(ctx context.Context, tx *gorm.DB, tenantID, professionalID uuid.UUID, price int, since time.Time) ([]*types.Appointment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, appointmentID uuid.UUID, status types.AppointmentStatus) error
}

type appointmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAppointmentRepo(db *gorm.DB, baseLog *logger.Logger) AppointmentRepo {
	return &appointmentRepo{db: db, log: baseLog.With("repo", "AppointmentRepo")}
}

func (ar *appointmentRepo) Create(ctx context.Context, tx *gorm.DB, appointments []*types.Appointment) ([]*types.Appointment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(appointments) == 0 {
		return []*types.Appointment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (ar *appointmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, appointmentIDs []uuid.UUID) ([]*types.Appointment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Appointment
	if len(appointmentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", appointmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *appointmentRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filter ListFilter) ([]*types.Appointment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	query := transaction.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filter.ProfessionalID != uuid.Nil {
		query = query.Where("professional_id = ?", filter.ProfessionalID)
	}
	if !filter.Start.IsZero() {
		query = query.Where("date >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		query = query.Where("date <= ?", filter.End)
	}
	var results []*types.Appointment
	if err := query.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *appointmentRepo) TransactionIDExists(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, transactionID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Appointment{}).
		Where("tenant_id = ? AND transaction_id = ?", tenantID, transactionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *appointmentRepo) ProofHashExists(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, proofHash string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if proofHash == "" {
		return false, nil
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Appointment{}).
		Where("tenant_id = ? AND proof_hash = ?", tenantID, proofHash).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *appointmentRepo) ListSamePriceSince(ctx context.Context, tx *gorm.DB, tenantID, professionalID uuid.UUID, price int, since time.Time) ([]*types.Appointment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Appointment
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND professional_id = ? AND price = ? AND date >= ?", tenantID, professionalID, price, since).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *appointmentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, appointmentID uuid.UUID, status types.AppointmentStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Appointment{}).
		Where("id = ?", appointmentID).
		Update("status", status).Error
}

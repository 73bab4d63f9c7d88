package audit

import (
	"context"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// AuditLogRepo is append-only: no update or delete methods exist on purpose.
type AuditLogRepo interface {
	Append(ctx context.Context, tx *gorm.DB, entries []*types.AuditLogEntry) ([]*types.AuditLogEntry, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, limit int) ([]*types.AuditLogEntry, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (ar *auditLogRepo) Append(ctx context.Context, tx *gorm.DB, entries []*types.AuditLogEntry) ([]*types.AuditLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(entries) == 0 {
		return []*types.AuditLogEntry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (ar *auditLogRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, limit int) ([]*types.AuditLogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	query := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.AuditLogEntry
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

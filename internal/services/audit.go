package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/clients/redisbus"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService writes the append-only trail. Record participates in the
// caller's transaction, so a failed audit write rolls the whole state
// change back. Announce runs after commit and is best-effort.
type AuditService interface {
	Record(ctx context.Context, tx *gorm.DB, tenantID, actorID uuid.UUID, appointmentID *uuid.UUID, action string, metadata map[string]any) (*domain.AuditLogEntry, error)
	Announce(ctx context.Context, entry *domain.AuditLogEntry)
	List(ctx context.Context, tenantID uuid.UUID, limit int) ([]*domain.AuditLogEntry, error)
}

type auditService struct {
	log          *logger.Logger
	auditLogRepo repos.AuditLogRepo
	bus          redisbus.AuditBus
}

func NewAuditService(log *logger.Logger, auditLogRepo repos.AuditLogRepo, bus redisbus.AuditBus) AuditService {
	serviceLog := log.With("service", "AuditService")
	return &auditService{
		log:          serviceLog,
		auditLogRepo: auditLogRepo,
		bus:          bus,
	}
}

func (as *auditService) Record(ctx context.Context, tx *gorm.DB, tenantID, actorID uuid.UUID, appointmentID *uuid.UUID, action string, metadata map[string]any) (*domain.AuditLogEntry, error) {
	var meta datatypes.JSON
	if len(metadata) > 0 {
		raw, mErr := json.Marshal(metadata)
		if mErr != nil {
			return nil, fmt.Errorf("marshal audit metadata: %w", mErr)
		}
		meta = datatypes.JSON(raw)
	}
	entry := &domain.AuditLogEntry{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ActorID:       actorID,
		AppointmentID: appointmentID,
		Action:        action,
		Metadata:      meta,
		CreatedAt:     time.Now(),
	}
	if _, err := as.auditLogRepo.Append(ctx, tx, []*domain.AuditLogEntry{entry}); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return entry, nil
}

// Announce publishes a committed entry to the redis bus. Call it only after
// the surrounding transaction has committed.
func (as *auditService) Announce(ctx context.Context, entry *domain.AuditLogEntry) {
	if as.bus == nil || entry == nil {
		return
	}
	if err := as.bus.Publish(ctx, entry); err != nil {
		as.log.Warn("Failed to publish audit entry", "action", entry.Action, "error", err)
	}
}

func (as *auditService) List(ctx context.Context, tenantID uuid.UUID, limit int) ([]*domain.AuditLogEntry, error) {
	return as.auditLogRepo.ListByTenant(ctx, nil, tenantID, limit)
}

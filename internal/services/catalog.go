package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
	"gorm.io/gorm"
)

type CreateServiceInput struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Price          int    `json:"price"`
	CommissionRate int    `json:"commissionRate"`
	Description    string `json:"description"`
}

type UpdateServiceInput struct {
	Name           *string `json:"name"`
	Category       *string `json:"category"`
	Price          *int    `json:"price"`
	CommissionRate *int    `json:"commissionRate"`
	Active         *bool   `json:"active"`
	Description    *string `json:"description"`
}

type CatalogService interface {
	Create(ctx context.Context, input CreateServiceInput) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, serviceID uuid.UUID, input UpdateServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, serviceID uuid.UUID) error
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	serviceRepo  repos.ServiceRepo
	auditService AuditService
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, serviceRepo repos.ServiceRepo, auditService AuditService) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:           db,
		log:          serviceLog,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (cs *catalogService) Create(ctx context.Context, input CreateServiceInput) (*domain.Service, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return nil, apierr.Forbidden("only managers manage the catalog")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apierr.Validation("name", "required")
	}
	if input.Price <= 0 {
		return nil, apierr.Validation("price", "must be positive")
	}
	if input.CommissionRate < 0 || input.CommissionRate > 100 {
		return nil, apierr.Validation("commissionRate", "must be between 0 and 100")
	}

	svc := &domain.Service{
		ID:             uuid.New(),
		TenantID:       rd.TenantID,
		Name:           strings.TrimSpace(input.Name),
		Category:       strings.TrimSpace(input.Category),
		Price:          input.Price,
		CommissionRate: input.CommissionRate,
		Active:         true,
		Description:    input.Description,
	}

	var auditEntry *domain.AuditLogEntry
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := cs.serviceRepo.Create(ctx, tx, []*domain.Service{svc}); cErr != nil {
			return fmt.Errorf("failed to create service: %w", cErr)
		}
		meta := map[string]any{"serviceId": svc.ID.String(), "name": svc.Name}
		entry, aErr := cs.auditService.Record(ctx, tx, rd.TenantID, rd.AccountID, nil, "service:create", meta)
		if aErr != nil {
			return aErr
		}
		auditEntry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.auditService.Announce(ctx, auditEntry)
	return svc, nil
}

func (cs *catalogService) List(ctx context.Context) ([]*domain.Service, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	return cs.serviceRepo.ListByTenant(ctx, nil, rd.TenantID)
}

func (cs *catalogService) Update(ctx context.Context, serviceID uuid.UUID, input UpdateServiceInput) (*domain.Service, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return nil, apierr.Forbidden("only managers manage the catalog")
	}

	svc, fErr := cs.ownedService(ctx, rd.TenantID, serviceID)
	if fErr != nil {
		return nil, fErr
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apierr.Validation("name", "must not be empty")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apierr.Validation("price", "must be positive")
		}
		updates["price"] = *input.Price
	}
	if input.CommissionRate != nil {
		if *input.CommissionRate < 0 || *input.CommissionRate > 100 {
			return nil, apierr.Validation("commissionRate", "must be between 0 and 100")
		}
		updates["commission_rate"] = *input.CommissionRate
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if len(updates) == 0 {
		return svc, nil
	}

	var auditEntry *domain.AuditLogEntry
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := cs.serviceRepo.Update(ctx, tx, serviceID, updates); uErr != nil {
			return fmt.Errorf("failed to update service: %w", uErr)
		}
		meta := map[string]any{"serviceId": serviceID.String()}
		entry, aErr := cs.auditService.Record(ctx, tx, rd.TenantID, rd.AccountID, nil, "service:update", meta)
		if aErr != nil {
			return aErr
		}
		auditEntry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.auditService.Announce(ctx, auditEntry)
	reloaded, rErr := cs.serviceRepo.GetByIDs(ctx, nil, []uuid.UUID{serviceID})
	if rErr != nil || len(reloaded) == 0 {
		return nil, fmt.Errorf("failed to reload service: %w", rErr)
	}
	return reloaded[0], nil
}

func (cs *catalogService) Delete(ctx context.Context, serviceID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return apierr.Forbidden("only managers manage the catalog")
	}
	if _, fErr := cs.ownedService(ctx, rd.TenantID, serviceID); fErr != nil {
		return fErr
	}

	var auditEntry *domain.AuditLogEntry
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := cs.serviceRepo.Delete(ctx, tx, serviceID); dErr != nil {
			return fmt.Errorf("failed to delete service: %w", dErr)
		}
		meta := map[string]any{"serviceId": serviceID.String()}
		entry, aErr := cs.auditService.Record(ctx, tx, rd.TenantID, rd.AccountID, nil, "service:delete", meta)
		if aErr != nil {
			return aErr
		}
		auditEntry = entry
		return nil
	})
	if err != nil {
		return err
	}

	cs.auditService.Announce(ctx, auditEntry)
	return nil
}

func (cs *catalogService) ownedService(ctx context.Context, tenantID, serviceID uuid.UUID) (*domain.Service, error) {
	found, err := cs.serviceRepo.GetByIDs(ctx, nil, []uuid.UUID{serviceID})
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if len(found) == 0 || found[0].TenantID != tenantID {
		return nil, apierr.NotFound("service")
	}
	return found[0], nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
	"gorm.io/gorm"
)

// PendingProfessional pairs an account with its profile for the manager's
// approval queue.
type PendingProfessional struct {
	Account *domain.Account `json:"account"`
	Profile *domain.Profile `json:"profile"`
}

type ApprovalService interface {
	ListPending(ctx context.Context) ([]*PendingProfessional, error)
	Decide(ctx context.Context, professionalID uuid.UUID, action domain.ApprovalAction) (*domain.Profile, error)
}

type approvalService struct {
	db           *gorm.DB
	log          *logger.Logger
	accountRepo  repos.AccountRepo
	profileRepo  repos.ProfileRepo
	approvalRepo repos.ApprovalDecisionRepo
	auditService AuditService
}

func NewApprovalService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	profileRepo repos.ProfileRepo,
	approvalRepo repos.ApprovalDecisionRepo,
	auditService AuditService,
) ApprovalService {
	serviceLog := log.With("service", "ApprovalService")
	return &approvalService{
		db:           db,
		log:          serviceLog,
		accountRepo:  accountRepo,
		profileRepo:  profileRepo,
		approvalRepo: approvalRepo,
		auditService: auditService,
	}
}

func (as *approvalService) ListPending(ctx context.Context) ([]*PendingProfessional, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return nil, apierr.Forbidden("only managers review registrations")
	}

	accounts, aErr := as.accountRepo.ListByTenant(ctx, nil, rd.TenantID, domain.RoleProfessional)
	if aErr != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", aErr)
	}
	if len(accounts) == 0 {
		return []*PendingProfessional{}, nil
	}

	accountIDs := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		accountIDs = append(accountIDs, a.ID)
	}
	profiles, pErr := as.profileRepo.GetByAccountIDs(ctx, nil, accountIDs)
	if pErr != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", pErr)
	}
	byAccount := make(map[uuid.UUID]*domain.Profile, len(profiles))
	for _, p := range profiles {
		byAccount[p.AccountID] = p
	}

	pending := []*PendingProfessional{}
	for _, a := range accounts {
		p := byAccount[a.ID]
		if p == nil || p.Approval != domain.ApprovalPending {
			continue
		}
		pending = append(pending, &PendingProfessional{Account: a, Profile: p})
	}
	return pending, nil
}

// Decide applies a manager's approve/reject. Re-applying the current state
// is idempotent at the profile level but still appends a decision row and
// an audit entry.
func (as *approvalService) Decide(ctx context.Context, professionalID uuid.UUID, action domain.ApprovalAction) (*domain.Profile, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return nil, apierr.Forbidden("only managers decide registrations")
	}
	switch action {
	case domain.ApprovalActionApprove, domain.ApprovalActionReject:
	default:
		return nil, apierr.Validation("action", "must be approve or reject")
	}

	accounts, gErr := as.accountRepo.GetByIDs(ctx, nil, []uuid.UUID{professionalID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to load professional: %w", gErr)
	}
	if len(accounts) == 0 || accounts[0].TenantID == nil || *accounts[0].TenantID != rd.TenantID {
		return nil, apierr.NotFound("professional")
	}
	if accounts[0].Role != domain.RoleProfessional {
		return nil, apierr.Validation("professionalId", "account is not a professional")
	}

	state := domain.ApprovalActive
	if action == domain.ApprovalActionReject {
		state = domain.ApprovalRejected
	}
	now := time.Now()

	var auditEntry *domain.AuditLogEntry
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := as.profileRepo.SetApproval(ctx, tx, professionalID, state, rd.AccountID, now); uErr != nil {
			return fmt.Errorf("failed to set approval state: %w", uErr)
		}
		decision := &domain.ApprovalDecision{
			ID:             uuid.New(),
			TenantID:       rd.TenantID,
			ProfessionalID: professionalID,
			ManagerID:      rd.AccountID,
			Action:         action,
			CreatedAt:      now,
		}
		if _, cErr := as.approvalRepo.Create(ctx, tx, []*domain.ApprovalDecision{decision}); cErr != nil {
			return fmt.Errorf("failed to record decision: %w", cErr)
		}
		meta := map[string]any{"professionalId": professionalID.String(), "action": string(action)}
		entry, aErr := as.auditService.Record(ctx, tx, rd.TenantID, rd.AccountID, nil, "approval:"+string(action), meta)
		if aErr != nil {
			return aErr
		}
		auditEntry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.auditService.Announce(ctx, auditEntry)

	profiles, pErr := as.profileRepo.GetByAccountIDs(ctx, nil, []uuid.UUID{professionalID})
	if pErr != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", pErr)
	}
	if len(profiles) == 0 {
		return nil, apierr.NotFound("profile")
	}
	return profiles[0], nil
}

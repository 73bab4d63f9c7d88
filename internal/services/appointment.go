package services

import (
	"context"
	"errors"
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

type CreateAppointmentInput struct {
	ProfessionalID uuid.UUID            `json:"professionalId"`
	ServiceID      uuid.UUID            `json:"serviceId"`
	Date           time.Time            `json:"date"`
	CustomerName   string               `json:"customerName"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	TransactionID  string               `json:"transactionId"`
	ProofURL       string               `json:"proofUrl"`
}

type AppointmentListQuery struct {
	ProfessionalID uuid.UUID
	Start          time.Time
	End            time.Time
}

type AppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error)
	List(ctx context.Context, query AppointmentListQuery) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus, reason string) (*domain.Appointment, error)
}

type appointmentService struct {
	db              *gorm.DB
	log             *logger.Logger
	appointmentRepo repos.AppointmentRepo
	serviceRepo     repos.ServiceRepo
	accountRepo     repos.AccountRepo
	dedupeService   DedupeService
	auditService    AuditService
	notifier        Notifier
}

func NewAppointmentService(
	db *gorm.DB,
	log *logger.Logger,
	appointmentRepo repos.AppointmentRepo,
	serviceRepo repos.ServiceRepo,
	accountRepo repos.AccountRepo,
	dedupeService DedupeService,
	auditService AuditService,
	notifier Notifier,
) AppointmentService {
	serviceLog := log.With("service", "AppointmentService")
	return &appointmentService{
		db:              db,
		log:             serviceLog,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		accountRepo:     accountRepo,
		dedupeService:   dedupeService,
		auditService:    auditService,
		notifier:        notifier,
	}
}

// Create runs the intake pipeline: authorize, validate, snapshot the
// commission terms, reject reused transaction ids, flag likely duplicates
// and persist appointment plus audit entry in one transaction.
func (as *appointmentService) Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}

	professionalID := input.ProfessionalID
	switch rd.Role {
	case domain.RoleProfessional:
		if rd.ApprovalState == domain.ApprovalRejected {
			return nil, apierr.Forbidden("registration was rejected")
		}
		if rd.ApprovalState != domain.ApprovalActive {
			return nil, apierr.PendingApproval()
		}
		if professionalID != uuid.Nil && professionalID != rd.AccountID {
			return nil, apierr.Forbidden("professionals submit their own appointments")
		}
		professionalID = rd.AccountID
	case domain.RoleManager:
		if professionalID == uuid.Nil {
			return nil, apierr.Validation("professionalId", "required")
		}
	default:
		return nil, apierr.Forbidden("unknown role")
	}

	if input.ServiceID == uuid.Nil {
		return nil, apierr.Validation("serviceId", "required")
	}
	if input.CustomerName == "" {
		return nil, apierr.Validation("customerName", "required")
	}
	if input.Date.IsZero() {
		return nil, apierr.Validation("date", "required")
	}
	switch input.PaymentMethod {
	case domain.PaymentCash, domain.PaymentPix, domain.PaymentCard:
	default:
		return nil, apierr.Validation("paymentMethod", "must be cash, pix or card")
	}
	if domain.DigitalPayment(input.PaymentMethod) && input.ProofURL == "" {
		return nil, apierr.Validation("proofUrl", "required for pix and card payments")
	}

	if rd.Role == domain.RoleManager {
		members, mErr := as.accountRepo.GetByIDs(ctx, nil, []uuid.UUID{professionalID})
		if mErr != nil {
			return nil, fmt.Errorf("failed to load professional: %w", mErr)
		}
		if len(members) == 0 || members[0].TenantID == nil || *members[0].TenantID != rd.TenantID {
			return nil, apierr.NotFound("professional")
		}
	}

	svcs, sErr := as.serviceRepo.GetByIDs(ctx, nil, []uuid.UUID{input.ServiceID})
	if sErr != nil {
		return nil, fmt.Errorf("failed to load service: %w", sErr)
	}
	if len(svcs) == 0 || svcs[0].TenantID != rd.TenantID {
		return nil, apierr.NotFound("service")
	}
	svc := svcs[0]
	if !svc.Active {
		return nil, apierr.Validation("serviceId", "service is inactive")
	}

	appointment := &domain.Appointment{
		ID:             uuid.New(),
		TenantID:       rd.TenantID,
		ProfessionalID: professionalID,
		ServiceID:      svc.ID,
		Date:           input.Date,
		CustomerName:   input.CustomerName,
		Price:          svc.Price,
		CommissionRate: svc.CommissionRate,
		PaymentMethod:  input.PaymentMethod,
		ProofURL:       input.ProofURL,
		ProofHash:      ProofHash(input.ProofURL),
		Status:         domain.AppointmentPending,
	}
	if input.TransactionID != "" {
		tid := input.TransactionID
		appointment.TransactionID = &tid
	}

	var auditEntry *domain.AuditLogEntry
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if appointment.TransactionID != nil {
			exists, eErr := as.appointmentRepo.TransactionIDExists(ctx, tx, rd.TenantID, *appointment.TransactionID)
			if eErr != nil {
				return fmt.Errorf("failed to check transaction id: %w", eErr)
			}
			if exists {
				return apierr.Duplicate("transaction id already recorded")
			}
		}

		flagged, dErr := as.dedupeService.PossibleDuplicate(ctx, tx, appointment)
		if dErr != nil {
			return fmt.Errorf("duplicate heuristics failed: %w", dErr)
		}
		appointment.PossibleDuplicate = flagged

		if _, cErr := as.appointmentRepo.Create(ctx, tx, []*domain.Appointment{appointment}); cErr != nil {
			if errors.Is(cErr, gorm.ErrDuplicatedKey) {
				return apierr.Duplicate("transaction id already recorded")
			}
			return fmt.Errorf("failed to create appointment: %w", cErr)
		}

		meta := map[string]any{
			"paymentMethod":     string(appointment.PaymentMethod),
			"price":             appointment.Price,
			"possibleDuplicate": appointment.PossibleDuplicate,
		}
		entry, aErr := as.auditService.Record(ctx, tx, rd.TenantID, rd.AccountID, &appointment.ID, "appointment:create", meta)
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
	if appointment.PossibleDuplicate {
		as.log.Warn("Appointment flagged as possible duplicate", "appointment_id", appointment.ID)
		as.notifier.PossibleDuplicate(ctx, appointment)
	}
	return appointment, nil
}

func (as *appointmentService) List(ctx context.Context, query AppointmentListQuery) ([]*domain.Appointment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}

	filter := repos.AppointmentListFilter{
		ProfessionalID: query.ProfessionalID,
		Start:          query.Start,
		End:            query.End,
	}
	if rd.Role == domain.RoleProfessional {
		if rd.ApprovalState == domain.ApprovalRejected {
			return nil, apierr.Forbidden("registration was rejected")
		}
		if rd.ApprovalState != domain.ApprovalActive {
			return nil, apierr.PendingApproval()
		}
		filter.ProfessionalID = rd.AccountID
	}
	return as.appointmentRepo.ListByTenant(ctx, nil, rd.TenantID, filter)
}

// UpdateStatus is a manager-only transition out of pending. Confirmed and
// rejected are terminal, so a decided appointment can never be re-decided.
// Confirmation and rejection are both audited with the resulting status in
// the action name and the optional reason in the metadata.
func (as *appointmentService) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus, reason string) (*domain.Appointment, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return nil, apierr.Forbidden("only managers update appointment status")
	}
	switch status {
	case domain.AppointmentConfirmed, domain.AppointmentRejected:
	default:
		return nil, apierr.Validation("status", "must be confirmed or rejected")
	}

	found, gErr := as.appointmentRepo.GetByIDs(ctx, nil, []uuid.UUID{appointmentID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", gErr)
	}
	if len(found) == 0 || found[0].TenantID != rd.TenantID {
		return nil, apierr.NotFound("appointment")
	}
	appointment := found[0]
	if appointment.Status != domain.AppointmentPending {
		return nil, apierr.Validation("status", "appointment is already "+string(appointment.Status))
	}

	var auditEntry *domain.AuditLogEntry
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := as.appointmentRepo.UpdateStatus(ctx, tx, appointment.ID, status); uErr != nil {
			return fmt.Errorf("failed to update appointment status: %w", uErr)
		}
		meta := map[string]any{"from": string(appointment.Status), "to": string(status)}
		if reason != "" {
			meta["reason"] = reason
		}
		entry, aErr := as.auditService.Record(ctx, tx, rd.TenantID, rd.AccountID, &appointment.ID, "appointment:status:"+string(status), meta)
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
	appointment.Status = status
	return appointment, nil
}

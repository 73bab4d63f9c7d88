package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
	"gorm.io/gorm"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type AvailabilityInput struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type BlockInput struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  string    `json:"reason"`
}

type BookingRequestInput struct {
	ProfessionalID *uuid.UUID `json:"professionalId"`
	ServiceID      *uuid.UUID `json:"serviceId"`
	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone"`
	RequestedAt    time.Time  `json:"requestedAt"`
}

type ScheduleService interface {
	SetAvailability(ctx context.Context, inputs []AvailabilityInput) ([]*domain.Availability, error)
	ListAvailability(ctx context.Context, professionalID uuid.UUID) ([]*domain.Availability, error)
	AddBlock(ctx context.Context, input BlockInput) (*domain.ScheduleBlock, error)
	ListBlocks(ctx context.Context, professionalID uuid.UUID) ([]*domain.ScheduleBlock, error)
	CreateRequest(ctx context.Context, input BookingRequestInput) (*domain.AppointmentRequest, error)
	ListRequests(ctx context.Context) ([]*domain.AppointmentRequest, error)
	DecideRequest(ctx context.Context, requestID uuid.UUID, status domain.RequestStatus) (*domain.AppointmentRequest, error)
}

type scheduleService struct {
	db           *gorm.DB
	log          *logger.Logger
	scheduleRepo repos.ScheduleRepo
	auditService AuditService
}

func NewScheduleService(db *gorm.DB, log *logger.Logger, scheduleRepo repos.ScheduleRepo, auditService AuditService) ScheduleService {
	serviceLog := log.With("service", "ScheduleService")
	return &scheduleService{
		db:           db,
		log:          serviceLog,
		scheduleRepo: scheduleRepo,
		auditService: auditService,
	}
}

// SetAvailability replaces nothing; it appends windows for the calling
// professional. Managers maintain availability through the same endpoint
// on behalf of the salon.
func (ss *scheduleService) SetAvailability(ctx context.Context, inputs []AvailabilityInput) ([]*domain.Availability, error) {
	rd, err := activeCaller(ctx)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, apierr.Validation("availability", "at least one window required")
	}

	rows := make([]*domain.Availability, 0, len(inputs))
	for _, in := range inputs {
		if in.Weekday < 0 || in.Weekday > 6 {
			return nil, apierr.Validation("weekday", "must be 0 (Sunday) through 6 (Saturday)")
		}
		if !clockPattern.MatchString(in.StartTime) || !clockPattern.MatchString(in.EndTime) {
			return nil, apierr.Validation("time", "must be HH:MM")
		}
		if in.StartTime >= in.EndTime {
			return nil, apierr.Validation("time", "start must precede end")
		}
		rows = append(rows, &domain.Availability{
			ID:             uuid.New(),
			TenantID:       rd.TenantID,
			ProfessionalID: rd.AccountID,
			Weekday:        in.Weekday,
			StartTime:      in.StartTime,
			EndTime:        in.EndTime,
			Active:         true,
		})
	}
	if _, cErr := ss.scheduleRepo.CreateAvailability(ctx, nil, rows); cErr != nil {
		return nil, fmt.Errorf("failed to store availability: %w", cErr)
	}
	return rows, nil
}

func (ss *scheduleService) ListAvailability(ctx context.Context, professionalID uuid.UUID) ([]*domain.Availability, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role == domain.RoleProfessional {
		professionalID = rd.AccountID
	}
	return ss.scheduleRepo.ListAvailability(ctx, nil, rd.TenantID, professionalID)
}

func (ss *scheduleService) AddBlock(ctx context.Context, input BlockInput) (*domain.ScheduleBlock, error) {
	rd, err := activeCaller(ctx)
	if err != nil {
		return nil, err
	}
	if input.StartAt.IsZero() || input.EndAt.IsZero() || !input.EndAt.After(input.StartAt) {
		return nil, apierr.Validation("block", "start must precede end")
	}

	block := &domain.ScheduleBlock{
		ID:             uuid.New(),
		TenantID:       rd.TenantID,
		ProfessionalID: rd.AccountID,
		StartAt:        input.StartAt,
		EndAt:          input.EndAt,
		Reason:         input.Reason,
	}
	if _, cErr := ss.scheduleRepo.CreateBlocks(ctx, nil, []*domain.ScheduleBlock{block}); cErr != nil {
		return nil, fmt.Errorf("failed to store block: %w", cErr)
	}
	return block, nil
}

func (ss *scheduleService) ListBlocks(ctx context.Context, professionalID uuid.UUID) ([]*domain.ScheduleBlock, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role == domain.RoleProfessional {
		professionalID = rd.AccountID
	}
	return ss.scheduleRepo.ListBlocks(ctx, nil, rd.TenantID, professionalID)
}

func (ss *scheduleService) CreateRequest(ctx context.Context, input BookingRequestInput) (*domain.AppointmentRequest, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if input.CustomerName == "" {
		return nil, apierr.Validation("customerName", "required")
	}
	if input.CustomerPhone == "" {
		return nil, apierr.Validation("customerPhone", "required")
	}
	if input.RequestedAt.IsZero() {
		return nil, apierr.Validation("requestedAt", "required")
	}

	request := &domain.AppointmentRequest{
		ID:             uuid.New(),
		TenantID:       rd.TenantID,
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		RequestedAt:    input.RequestedAt,
		Status:         domain.RequestRequested,
	}
	if _, cErr := ss.scheduleRepo.CreateRequests(ctx, nil, []*domain.AppointmentRequest{request}); cErr != nil {
		return nil, fmt.Errorf("failed to store booking request: %w", cErr)
	}
	return request, nil
}

func (ss *scheduleService) ListRequests(ctx context.Context) ([]*domain.AppointmentRequest, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	requests, err := ss.scheduleRepo.ListRequests(ctx, nil, rd.TenantID)
	if err != nil {
		return nil, err
	}
	if rd.Role == domain.RoleProfessional {
		own := []*domain.AppointmentRequest{}
		for _, r := range requests {
			if r.ProfessionalID != nil && *r.ProfessionalID == rd.AccountID {
				own = append(own, r)
			}
		}
		return own, nil
	}
	return requests, nil
}

func (ss *scheduleService) DecideRequest(ctx context.Context, requestID uuid.UUID, status domain.RequestStatus) (*domain.AppointmentRequest, error) {
	rd, err := activeCaller(ctx)
	if err != nil {
		return nil, err
	}
	switch status {
	case domain.RequestApproved, domain.RequestDeclined:
	default:
		return nil, apierr.Validation("status", "must be approved or declined")
	}

	found, gErr := ss.scheduleRepo.GetRequestByIDs(ctx, nil, []uuid.UUID{requestID})
	if gErr != nil {
		return nil, fmt.Errorf("failed to load booking request: %w", gErr)
	}
	if len(found) == 0 || found[0].TenantID != rd.TenantID {
		return nil, apierr.NotFound("booking request")
	}
	request := found[0]
	if rd.Role == domain.RoleProfessional && (request.ProfessionalID == nil || *request.ProfessionalID != rd.AccountID) {
		return nil, apierr.Forbidden("request belongs to another professional")
	}

	var auditEntry *domain.AuditLogEntry
	txErr := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := ss.scheduleRepo.UpdateRequestStatus(ctx, tx, requestID, status); uErr != nil {
			return fmt.Errorf("failed to update booking request: %w", uErr)
		}
		meta := map[string]any{"requestId": requestID.String(), "status": string(status)}
		entry, aErr := ss.auditService.Record(ctx, tx, rd.TenantID, rd.AccountID, nil, "schedule:request:"+string(status), meta)
		if aErr != nil {
			return aErr
		}
		auditEntry = entry
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	ss.auditService.Announce(ctx, auditEntry)
	request.Status = status
	return request, nil
}

// activeCaller requires an authenticated caller whose professional profile
// is active; managers always pass. Rejected professionals get Forbidden,
// pending ones get PendingApproval, so the client can tell them apart.
func activeCaller(ctx context.Context) (*requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role == domain.RoleProfessional && rd.ApprovalState != domain.ApprovalActive {
		if rd.ApprovalState == domain.ApprovalRejected {
			return nil, apierr.Forbidden("registration was rejected")
		}
		return nil, apierr.PendingApproval()
	}
	return rd, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/clients/whatsapp"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
)

// Notifier pushes out-of-band messages to managers. All methods are
// fire-and-forget: a delivery failure is logged and never surfaces to the
// request that triggered it.
type Notifier interface {
	PossibleDuplicate(ctx context.Context, appointment *domain.Appointment)
	ProfessionalRegistered(ctx context.Context, tenantID uuid.UUID, professionalName string)
}

type notifier struct {
	log         *logger.Logger
	wa          whatsapp.Client
	tenantRepo  repos.TenantRepo
	accountRepo repos.AccountRepo
}

// NewNotifier accepts a nil whatsapp client, in which case every
// notification is a no-op.
func NewNotifier(log *logger.Logger, wa whatsapp.Client, tenantRepo repos.TenantRepo, accountRepo repos.AccountRepo) Notifier {
	serviceLog := log.With("service", "Notifier")
	return &notifier{
		log:         serviceLog,
		wa:          wa,
		tenantRepo:  tenantRepo,
		accountRepo: accountRepo,
	}
}

func (n *notifier) PossibleDuplicate(ctx context.Context, appointment *domain.Appointment) {
	if n.wa == nil || appointment == nil {
		return
	}
	body := fmt.Sprintf("Possible duplicate appointment flagged for review (customer %s).", appointment.CustomerName)
	n.sendToManager(ctx, appointment.TenantID, body)
}

func (n *notifier) ProfessionalRegistered(ctx context.Context, tenantID uuid.UUID, professionalName string) {
	if n.wa == nil {
		return
	}
	body := fmt.Sprintf("%s registered and is awaiting approval.", professionalName)
	n.sendToManager(ctx, tenantID, body)
}

func (n *notifier) sendToManager(ctx context.Context, tenantID uuid.UUID, body string) {
	tenants, err := n.tenantRepo.GetByIDs(ctx, nil, []uuid.UUID{tenantID})
	if err != nil || len(tenants) == 0 {
		n.log.Warn("Could not resolve tenant for notification", "error", err)
		return
	}
	managers, err := n.accountRepo.GetByIDs(ctx, nil, []uuid.UUID{tenants[0].ManagerAccountID})
	if err != nil || len(managers) == 0 || managers[0].Phone == "" {
		n.log.Warn("Manager unreachable for notification", "error", err)
		return
	}
	if sErr := n.wa.SendText(ctx, managers[0].Phone, body); sErr != nil {
		n.log.Warn("Failed to send WhatsApp notification", "error", sErr)
	}
}

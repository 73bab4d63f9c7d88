package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/data/repos/testutil"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	repos       repos.Set
	auth        AuthService
	audit       AuditService
	dedupe      DedupeService
	appointment AppointmentService
	approval    ApprovalService
	catalog     CatalogService
	stats       StatsService
	schedule    ScheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	reposet := repos.NewSet(gdb, log)

	tokenService := NewTokenService(log, "test-secret", time.Hour)
	auditService := NewAuditService(log, reposet.AuditLog, nil)
	notifier := NewNotifier(log, nil, reposet.Tenant, reposet.Account)
	dedupeService := NewDedupeService(log, reposet.Appointment, 2*time.Hour)

	return &testEnv{
		db:          gdb,
		repos:       reposet,
		auth:        NewAuthService(gdb, log, reposet.Account, reposet.Profile, reposet.Tenant, tokenService, auditService, notifier),
		audit:       auditService,
		dedupe:      dedupeService,
		appointment: NewAppointmentService(gdb, log, reposet.Appointment, reposet.Service, reposet.Account, dedupeService, auditService, notifier),
		approval:    NewApprovalService(gdb, log, reposet.Account, reposet.Profile, reposet.Approval, auditService),
		catalog:     NewCatalogService(gdb, log, reposet.Service, auditService),
		stats:       NewStatsService(log, reposet.Appointment, reposet.Account),
		schedule:    NewScheduleService(gdb, log, reposet.Schedule, auditService),
	}
}

type testSalon struct {
	tenant  *domain.Tenant
	manager *domain.Account
}

func (e *testEnv) seedSalon(t *testing.T) *testSalon {
	t.Helper()
	session, err := e.auth.RegisterManager(context.Background(), RegisterManagerInput{
		Email:     fmt.Sprintf("manager-%s@example.com", uuid.New()),
		Password:  "sufficiently-long",
		FirstName: "Ana",
		LastName:  "Souza",
		SalonName: "Studio Bela",
	})
	if err != nil {
		t.Fatalf("register manager: %v", err)
	}
	tenants, err := e.repos.Tenant.GetByIDs(context.Background(), nil, []uuid.UUID{*session.Account.TenantID})
	if err != nil || len(tenants) == 0 {
		t.Fatalf("load tenant: %v", err)
	}
	return &testSalon{tenant: tenants[0], manager: session.Account}
}

func (e *testEnv) seedProfessional(t *testing.T, salon *testSalon, state domain.ApprovalState) *domain.Account {
	t.Helper()
	session, err := e.auth.RegisterProfessional(context.Background(), RegisterProfessionalInput{
		Email:      fmt.Sprintf("pro-%s@example.com", uuid.New()),
		Password:   "sufficiently-long",
		FirstName:  "Bruno",
		TenantCode: salon.tenant.Code,
	})
	if err != nil {
		t.Fatalf("register professional: %v", err)
	}
	if state != domain.ApprovalPending {
		deciderCtx := e.ctxFor(salon.manager, domain.ApprovalActive)
		action := domain.ApprovalActionApprove
		if state == domain.ApprovalRejected {
			action = domain.ApprovalActionReject
		}
		if _, dErr := e.approval.Decide(deciderCtx, session.Account.ID, action); dErr != nil {
			t.Fatalf("decide professional: %v", dErr)
		}
	}
	return session.Account
}

func (e *testEnv) seedService(t *testing.T, salon *testSalon, price, commissionRate int) *domain.Service {
	t.Helper()
	svc, err := e.catalog.Create(e.ctxFor(salon.manager, domain.ApprovalActive), CreateServiceInput{
		Name:           fmt.Sprintf("Corte %s", uuid.New().String()[:8]),
		Price:          price,
		CommissionRate: commissionRate,
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func (e *testEnv) ctxFor(account *domain.Account, state domain.ApprovalState) context.Context {
	rd := &requestdata.RequestData{
		AccountID:     account.ID,
		Role:          account.Role,
		ApprovalState: state,
	}
	if account.TenantID != nil {
		rd.TenantID = *account.TenantID
	}
	return requestdata.WithRequestData(context.Background(), rd)
}

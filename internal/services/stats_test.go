package services

import (
	"errors"
	"testing"
	"time"

	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
)

func TestDashboardAggregatesConfirmedOnly(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 10000, 40)
	proCtx := env.ctxFor(pro, domain.ApprovalActive)
	mgrCtx := env.ctxFor(salon.manager, domain.ApprovalActive)

	confirmed, err := env.appointment.Create(proCtx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Wagner",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.appointment.UpdateStatus(mgrCtx, confirmed.ID, domain.AppointmentConfirmed, ""); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Second appointment stays pending and must not count toward revenue.
	if _, err := env.appointment.Create(proCtx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now().Add(5 * time.Hour),
		CustomerName:  "Ximena",
		PaymentMethod: domain.PaymentCash,
	}); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	stats, err := env.stats.Dashboard(mgrCtx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalCuts != 1 {
		t.Fatalf("expected 1 confirmed cut, got %d", stats.TotalCuts)
	}
	if stats.TotalRevenue != 10000 {
		t.Fatalf("expected revenue 10000, got %d", stats.TotalRevenue)
	}
	if stats.TotalCommission != 4000 {
		t.Fatalf("expected commission 4000, got %d", stats.TotalCommission)
	}
	if stats.PendingAppointments != 1 {
		t.Fatalf("expected 1 pending appointment, got %d", stats.PendingAppointments)
	}
	if len(stats.RevenueByDay) != 7 {
		t.Fatalf("expected a 7 day series, got %d", len(stats.RevenueByDay))
	}

	var proRow *ProfessionalStats
	for _, row := range stats.Professionals {
		if row.ProfessionalID == pro.ID {
			proRow = row
		}
	}
	if proRow == nil {
		t.Fatalf("professional missing from breakdown")
	}
	if proRow.Cuts != 1 || proRow.Revenue != 10000 || proRow.Commission != 4000 {
		t.Fatalf("professional breakdown wrong: %+v", proRow)
	}
}

func TestDashboardCountsRejectionsAsDeductions(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 8000, 50)
	mgrCtx := env.ctxFor(salon.manager, domain.ApprovalActive)

	appt, err := env.appointment.Create(env.ctxFor(pro, domain.ApprovalActive), CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Yuri",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.appointment.UpdateStatus(mgrCtx, appt.ID, domain.AppointmentRejected, ""); err != nil {
		t.Fatalf("reject: %v", err)
	}

	stats, err := env.stats.Dashboard(mgrCtx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalCuts != 0 || stats.TotalRevenue != 0 {
		t.Fatalf("rejected appointments must not count as revenue")
	}
	for _, row := range stats.Professionals {
		if row.ProfessionalID == pro.ID && row.Deductions != 4000 {
			t.Fatalf("expected deduction 4000, got %d", row.Deductions)
		}
	}
}

func TestDashboardIsManagerOnly(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)

	if _, err := env.stats.Dashboard(env.ctxFor(pro, domain.ApprovalActive)); !errors.Is(err, apierr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for professionals, got %v", err)
	}
}

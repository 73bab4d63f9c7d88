package services

import (
	"context"
	"errors"
	"testing"

	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
)

func TestDecideApproveActivatesProfile(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalPending)

	profile, err := env.approval.Decide(env.ctxFor(salon.manager, domain.ApprovalActive), pro.ID, domain.ApprovalActionApprove)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if profile.Approval != domain.ApprovalActive {
		t.Fatalf("expected active, got %s", profile.Approval)
	}
	if profile.ApprovedByID == nil || *profile.ApprovedByID != salon.manager.ID {
		t.Fatalf("approval must record the deciding manager")
	}
	if profile.ApprovedAt == nil {
		t.Fatalf("approval must be timestamped")
	}
	if profile.RejectedAt != nil {
		t.Fatalf("approving must clear rejection fields")
	}

	decisions, dErr := env.repos.Approval.ListByProfessional(context.Background(), nil, pro.ID)
	if dErr != nil {
		t.Fatalf("list decisions: %v", dErr)
	}
	if len(decisions) != 1 || decisions[0].Action != domain.ApprovalActionApprove {
		t.Fatalf("expected one approve decision row")
	}
}

func TestDecideRejectThenApprove(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalPending)
	mgrCtx := env.ctxFor(salon.manager, domain.ApprovalActive)

	profile, err := env.approval.Decide(mgrCtx, pro.ID, domain.ApprovalActionReject)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if profile.Approval != domain.ApprovalRejected || profile.RejectedAt == nil {
		t.Fatalf("rejection not recorded")
	}

	// A manager can reverse a rejection; the history keeps both rows.
	profile, err = env.approval.Decide(mgrCtx, pro.ID, domain.ApprovalActionApprove)
	if err != nil {
		t.Fatalf("approve after reject: %v", err)
	}
	if profile.Approval != domain.ApprovalActive {
		t.Fatalf("expected active after reversal, got %s", profile.Approval)
	}
	if profile.RejectedAt != nil {
		t.Fatalf("reversal must clear the rejection timestamp")
	}

	decisions, dErr := env.repos.Approval.ListByProfessional(context.Background(), nil, pro.ID)
	if dErr != nil {
		t.Fatalf("list decisions: %v", dErr)
	}
	if len(decisions) != 2 {
		t.Fatalf("expected full decision history, got %d rows", len(decisions))
	}
}

func TestDecideRequiresManagerOfSameSalon(t *testing.T) {
	env := newTestEnv(t)
	salonA := env.seedSalon(t)
	salonB := env.seedSalon(t)
	pro := env.seedProfessional(t, salonA, domain.ApprovalPending)

	otherPro := env.seedProfessional(t, salonA, domain.ApprovalActive)
	if _, err := env.approval.Decide(env.ctxFor(otherPro, domain.ApprovalActive), pro.ID, domain.ApprovalActionApprove); !errors.Is(err, apierr.ErrForbidden) {
		t.Fatalf("professionals must not decide, got %v", err)
	}

	if _, err := env.approval.Decide(env.ctxFor(salonB.manager, domain.ApprovalActive), pro.ID, domain.ApprovalActionApprove); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("cross-salon decisions must read as not found, got %v", err)
	}
}

func TestListPendingOnlyShowsOwnSalon(t *testing.T) {
	env := newTestEnv(t)
	salonA := env.seedSalon(t)
	salonB := env.seedSalon(t)
	proA := env.seedProfessional(t, salonA, domain.ApprovalPending)
	env.seedProfessional(t, salonB, domain.ApprovalPending)
	env.seedProfessional(t, salonA, domain.ApprovalActive)

	pending, err := env.approval.ListPending(env.ctxFor(salonA.manager, domain.ApprovalActive))
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected exactly the one pending professional, got %d", len(pending))
	}
	if pending[0].Account.ID != proA.ID {
		t.Fatalf("wrong professional in the queue")
	}
}

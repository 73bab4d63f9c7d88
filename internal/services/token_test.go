package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos/testutil"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
)

func TestTokenRoundTrip(t *testing.T) {
	log := testutil.Logger(t)
	ts := NewTokenService(log, "test-secret", time.Hour)

	tenantID := uuid.New()
	account := &domain.Account{
		ID:       uuid.New(),
		Role:     domain.RoleProfessional,
		TenantID: &tenantID,
	}

	token, ttl, err := ts.Issue(account, domain.ApprovalActive, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ttl != time.Hour {
		t.Fatalf("expected default ttl, got %v", ttl)
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != account.ID.String() {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if claims.TenantID != tenantID.String() {
		t.Fatalf("tenant mismatch: %s", claims.TenantID)
	}
	if claims.Role != string(domain.RoleProfessional) {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.ApprovalState != string(domain.ApprovalActive) {
		t.Fatalf("approval mismatch: %s", claims.ApprovalState)
	}
}

func TestTokenRememberDays(t *testing.T) {
	log := testutil.Logger(t)
	ts := NewTokenService(log, "test-secret", time.Hour)
	account := &domain.Account{ID: uuid.New(), Role: domain.RoleManager}

	_, ttl, err := ts.Issue(account, domain.ApprovalActive, 7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ttl != 7*24*time.Hour {
		t.Fatalf("expected 7 day ttl, got %v", ttl)
	}

	_, ttl, err = ts.Issue(account, domain.ApprovalActive, 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ttl != 30*24*time.Hour {
		t.Fatalf("expected 30 day ttl, got %v", ttl)
	}

	// Unsupported values fall back to the default.
	_, ttl, err = ts.Issue(account, domain.ApprovalActive, 90)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ttl != time.Hour {
		t.Fatalf("expected default ttl for unsupported value, got %v", ttl)
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	log := testutil.Logger(t)
	ts := NewTokenService(log, "test-secret", time.Hour)
	other := NewTokenService(log, "other-secret", time.Hour)
	account := &domain.Account{ID: uuid.New(), Role: domain.RoleManager}

	token, _, err := ts.Issue(account, domain.ApprovalActive, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, pErr := other.Parse(token); !errors.Is(pErr, apierr.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for wrong key, got %v", pErr)
	}
	if _, pErr := ts.Parse("not.a.token"); !errors.Is(pErr, apierr.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for garbage, got %v", pErr)
	}
}

func TestTokenExpiry(t *testing.T) {
	log := testutil.Logger(t)
	ts := NewTokenService(log, "test-secret", -time.Minute)
	account := &domain.Account{ID: uuid.New(), Role: domain.RoleManager}

	token, _, err := ts.Issue(account, domain.ApprovalActive, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, pErr := ts.Parse(token); !errors.Is(pErr, apierr.ErrUnauthenticated) {
		t.Fatalf("expected expired token to be rejected, got %v", pErr)
	}
}

package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
)

func TestProofHash(t *testing.T) {
	if got := ProofHash(""); got != "" {
		t.Fatalf("empty proof should hash to empty string, got %q", got)
	}
	a := ProofHash("https://cdn.example.com/receipts/1.jpg")
	b := ProofHash("https://cdn.example.com/receipts/1.jpg")
	c := ProofHash("https://cdn.example.com/receipts/2.jpg")
	if a != b {
		t.Fatalf("same input must hash identically")
	}
	if a == c {
		t.Fatalf("different inputs must not collide")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(a))
	}
}

func TestPriceWindowMatch(t *testing.T) {
	pro := uuid.New()
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	window := 2 * time.Hour

	candidate := &domain.Appointment{ProfessionalID: pro, Price: 5000, Date: base}

	cases := []struct {
		name  string
		prior *domain.Appointment
		want  bool
	}{
		{"same price inside window", &domain.Appointment{ProfessionalID: pro, Price: 5000, Date: base.Add(90 * time.Minute)}, true},
		{"same price at window edge", &domain.Appointment{ProfessionalID: pro, Price: 5000, Date: base.Add(2 * time.Hour)}, true},
		{"same price outside window", &domain.Appointment{ProfessionalID: pro, Price: 5000, Date: base.Add(121 * time.Minute)}, false},
		{"earlier prior inside window", &domain.Appointment{ProfessionalID: pro, Price: 5000, Date: base.Add(-time.Hour)}, true},
		{"different price", &domain.Appointment{ProfessionalID: pro, Price: 4500, Date: base.Add(time.Minute)}, false},
		{"different professional", &domain.Appointment{ProfessionalID: uuid.New(), Price: 5000, Date: base.Add(time.Minute)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PriceWindowMatch(candidate, tc.prior, window); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProofHashMatch(t *testing.T) {
	h := ProofHash("proof.jpg")
	if !ProofHashMatch(h, h) {
		t.Fatalf("equal hashes must match")
	}
	if ProofHashMatch("", "") {
		t.Fatalf("appointments without proofs must never match")
	}
	if ProofHashMatch(h, ProofHash("other.jpg")) {
		t.Fatalf("different hashes must not match")
	}
}

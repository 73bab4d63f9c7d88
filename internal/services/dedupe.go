package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// ProofHash fingerprints a payment proof reference. Empty input hashes to
// the empty string so unset proofs never collide with each other.
func ProofHash(proofURL string) string {
	if proofURL == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(proofURL))
	return hex.EncodeToString(sum[:])
}

// PriceWindowMatch reports whether the candidate lands inside the advisory
// same-professional same-price window of an earlier appointment.
func PriceWindowMatch(candidate *domain.Appointment, prior *domain.Appointment, window time.Duration) bool {
	if candidate.ProfessionalID != prior.ProfessionalID {
		return false
	}
	if candidate.Price != prior.Price {
		return false
	}
	delta := candidate.Date.Sub(prior.Date)
	if delta < 0 {
		delta = -delta
	}
	return delta <= window
}

// ProofHashMatch reports whether two appointments reference the same
// payment proof. Appointments without a proof never match.
func ProofHashMatch(candidateHash, priorHash string) bool {
	return candidateHash != "" && candidateHash == priorHash
}

// DedupeService runs the advisory duplicate heuristics over digital
// payments; cash appointments are never compared. A positive result flags
// the appointment; it never rejects it. Hard rejection of reused
// transaction ids lives in AppointmentService, backed by the unique index.
type DedupeService interface {
	PossibleDuplicate(ctx context.Context, tx *gorm.DB, candidate *domain.Appointment) (bool, error)
}

type dedupeService struct {
	log             *logger.Logger
	appointmentRepo repos.AppointmentRepo
	window          time.Duration
}

func NewDedupeService(log *logger.Logger, appointmentRepo repos.AppointmentRepo, window time.Duration) DedupeService {
	serviceLog := log.With("service", "DedupeService")
	return &dedupeService{
		log:             serviceLog,
		appointmentRepo: appointmentRepo,
		window:          window,
	}
}

func (ds *dedupeService) PossibleDuplicate(ctx context.Context, tx *gorm.DB, candidate *domain.Appointment) (bool, error) {
	if !domain.DigitalPayment(candidate.PaymentMethod) {
		return false, nil
	}

	since := candidate.Date.Add(-ds.window)
	priors, err := ds.appointmentRepo.ListSamePriceSince(ctx, tx, candidate.TenantID, candidate.ProfessionalID, candidate.Price, since)
	if err != nil {
		return false, err
	}
	for _, prior := range priors {
		if prior.ID == candidate.ID || prior.ID == uuid.Nil {
			continue
		}
		if PriceWindowMatch(candidate, prior, ds.window) {
			return true, nil
		}
	}

	if candidate.ProofHash == "" {
		return false, nil
	}
	hashSeen, err := ds.appointmentRepo.ProofHashExists(ctx, tx, candidate.TenantID, candidate.ProofHash)
	if err != nil {
		return false, err
	}
	return hashSeen, nil
}

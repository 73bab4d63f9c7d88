package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
)

func TestCreateAppointmentSnapshotsCommission(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 8000, 40)

	ctx := env.ctxFor(pro, domain.ApprovalActive)
	appt, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Carlos",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if appt.Price != 8000 || appt.CommissionRate != 40 {
		t.Fatalf("expected snapshot 8000/40, got %d/%d", appt.Price, appt.CommissionRate)
	}
	if appt.Status != domain.AppointmentPending {
		t.Fatalf("new appointments must start pending, got %s", appt.Status)
	}
	if appt.ProfessionalID != pro.ID {
		t.Fatalf("professional must be the caller")
	}

	// Later catalog edits must not rewrite the snapshot.
	mgrCtx := env.ctxFor(salon.manager, domain.ApprovalActive)
	newPrice := 9000
	if _, uErr := env.catalog.Update(mgrCtx, svc.ID, UpdateServiceInput{Price: &newPrice}); uErr != nil {
		t.Fatalf("update service: %v", uErr)
	}
	reloaded, gErr := env.repos.Appointment.GetByIDs(context.Background(), nil, []uuid.UUID{appt.ID})
	if gErr != nil || len(reloaded) == 0 {
		t.Fatalf("reload appointment: %v", gErr)
	}
	if reloaded[0].Price != 8000 {
		t.Fatalf("snapshot must survive catalog edits, got %d", reloaded[0].Price)
	}
}

func TestCreateAppointmentRequiresProofForDigital(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 5000, 50)
	ctx := env.ctxFor(pro, domain.ApprovalActive)

	for _, method := range []domain.PaymentMethod{domain.PaymentPix, domain.PaymentCard} {
		_, err := env.appointment.Create(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			Date:          time.Now(),
			CustomerName:  "Diego",
			PaymentMethod: method,
		})
		if !errors.Is(err, apierr.ErrValidation) {
			t.Fatalf("%s without proof should fail validation, got %v", method, err)
		}
	}

	// Cash never needs a proof.
	if _, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Diego",
		PaymentMethod: domain.PaymentCash,
	}); err != nil {
		t.Fatalf("cash without proof: %v", err)
	}
}

func TestCreateAppointmentRejectsReusedTransactionID(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 5000, 50)
	ctx := env.ctxFor(pro, domain.ApprovalActive)

	txid := "E2E-" + uuid.New().String()
	first, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Elisa",
		PaymentMethod: domain.PaymentPix,
		TransactionID: txid,
		ProofURL:      "https://cdn.example.com/proof-a.jpg",
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.TransactionID == nil || *first.TransactionID != txid {
		t.Fatalf("transaction id not stored")
	}

	_, err = env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now().Add(26 * time.Hour),
		CustomerName:  "Elisa",
		PaymentMethod: domain.PaymentPix,
		TransactionID: txid,
		ProofURL:      "https://cdn.example.com/proof-b.jpg",
	})
	if !errors.Is(err, apierr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused transaction id, got %v", err)
	}
}

func TestCreateAppointmentFlagsButNeverBlocks(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 7000, 50)
	ctx := env.ctxFor(pro, domain.ApprovalActive)

	base := time.Now()
	first, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          base,
		CustomerName:  "Fernanda",
		PaymentMethod: domain.PaymentPix,
		TransactionID: "T-" + uuid.New().String(),
		ProofURL:      fmt.Sprintf("https://cdn.example.com/%s.jpg", uuid.New()),
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.PossibleDuplicate {
		t.Fatalf("first appointment must not be flagged")
	}

	// Same professional, same price, inside the window, different
	// transaction id and proof: advisory flag only.
	second, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          base.Add(30 * time.Minute),
		CustomerName:  "Gustavo",
		PaymentMethod: domain.PaymentPix,
		TransactionID: "T-" + uuid.New().String(),
		ProofURL:      fmt.Sprintf("https://cdn.example.com/%s.jpg", uuid.New()),
	})
	if err != nil {
		t.Fatalf("flagged appointment must still be created: %v", err)
	}
	if !second.PossibleDuplicate {
		t.Fatalf("expected the price-window heuristic to flag")
	}
	if second.Status != domain.AppointmentPending {
		t.Fatalf("flagging must not change status, got %s", second.Status)
	}
}

func TestCreateAppointmentNeverFlagsCash(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 7000, 50)
	ctx := env.ctxFor(pro, domain.ApprovalActive)

	base := time.Now()
	if _, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          base,
		CustomerName:  "Heitor",
		PaymentMethod: domain.PaymentCash,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Back-to-back walk-ins at the same price are normal for cash; the
	// heuristics only apply to digital payments.
	second, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          base.Add(30 * time.Minute),
		CustomerName:  "Ivone",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.PossibleDuplicate {
		t.Fatalf("cash appointments must not trip the duplicate heuristics")
	}
}

func TestCreateAppointmentFlagsReusedProof(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	cheap := env.seedService(t, salon, 3000, 50)
	dear := env.seedService(t, salon, 12000, 50)
	ctx := env.ctxFor(pro, domain.ApprovalActive)

	proof := fmt.Sprintf("https://cdn.example.com/%s.jpg", uuid.New())
	if _, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     cheap.ID,
		Date:          time.Now(),
		CustomerName:  "Helena",
		PaymentMethod: domain.PaymentPix,
		TransactionID: "T-" + uuid.New().String(),
		ProofURL:      proof,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Different price and day, but the same proof: the hash heuristic fires.
	second, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     dear.ID,
		Date:          time.Now().Add(72 * time.Hour),
		CustomerName:  "Igor",
		PaymentMethod: domain.PaymentPix,
		TransactionID: "T-" + uuid.New().String(),
		ProofURL:      proof,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !second.PossibleDuplicate {
		t.Fatalf("expected the proof-hash heuristic to flag")
	}
}

func TestCreateAppointmentGatesOnApproval(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pending := env.seedProfessional(t, salon, domain.ApprovalPending)
	svc := env.seedService(t, salon, 5000, 50)

	ctx := env.ctxFor(pending, domain.ApprovalPending)
	_, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Joana",
		PaymentMethod: domain.PaymentCash,
	})
	if !errors.Is(err, apierr.ErrPendingApproval) {
		t.Fatalf("expected ErrPendingApproval, got %v", err)
	}

	// A rejected professional is out, not waiting.
	rejected := env.seedProfessional(t, salon, domain.ApprovalRejected)
	_, err = env.appointment.Create(env.ctxFor(rejected, domain.ApprovalRejected), CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Joana",
		PaymentMethod: domain.PaymentCash,
	})
	if !errors.Is(err, apierr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a rejected professional, got %v", err)
	}
}

func TestCreateAppointmentTenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	salonA := env.seedSalon(t)
	salonB := env.seedSalon(t)
	proA := env.seedProfessional(t, salonA, domain.ApprovalActive)
	svcB := env.seedService(t, salonB, 5000, 50)

	// A professional in salon A cannot book against salon B's catalog.
	ctx := env.ctxFor(proA, domain.ApprovalActive)
	_, err := env.appointment.Create(ctx, CreateAppointmentInput{
		ServiceID:     svcB.ID,
		Date:          time.Now(),
		CustomerName:  "Karina",
		PaymentMethod: domain.PaymentCash,
	})
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-tenant service, got %v", err)
	}
}

func TestListAppointmentsScopesProfessionals(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	proA := env.seedProfessional(t, salon, domain.ApprovalActive)
	proB := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 5000, 50)

	for i, pro := range []*domain.Account{proA, proB} {
		if _, err := env.appointment.Create(env.ctxFor(pro, domain.ApprovalActive), CreateAppointmentInput{
			ServiceID:     svc.ID,
			Date:          time.Now().Add(time.Duration(i) * 24 * time.Hour),
			CustomerName:  "Luana",
			PaymentMethod: domain.PaymentCash,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	own, err := env.appointment.List(env.ctxFor(proA, domain.ApprovalActive), AppointmentListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, a := range own {
		if a.ProfessionalID != proA.ID {
			t.Fatalf("professional listing leaked another professional's row")
		}
	}

	all, err := env.appointment.List(env.ctxFor(salon.manager, domain.ApprovalActive), AppointmentListQuery{})
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(all) < 2 {
		t.Fatalf("manager should see the whole salon, got %d", len(all))
	}
	for _, a := range all {
		if a.TenantID != salon.tenant.ID {
			t.Fatalf("manager listing leaked another salon's row")
		}
	}
}

func TestUpdateStatusIsManagerOnlyAndAudited(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 5000, 50)

	appt, err := env.appointment.Create(env.ctxFor(pro, domain.ApprovalActive), CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Marcos",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, uErr := env.appointment.UpdateStatus(env.ctxFor(pro, domain.ApprovalActive), appt.ID, domain.AppointmentConfirmed, ""); !errors.Is(uErr, apierr.ErrForbidden) {
		t.Fatalf("professional must not confirm, got %v", uErr)
	}

	updated, uErr := env.appointment.UpdateStatus(env.ctxFor(salon.manager, domain.ApprovalActive), appt.ID, domain.AppointmentConfirmed, "")
	if uErr != nil {
		t.Fatalf("manager confirm: %v", uErr)
	}
	if updated.Status != domain.AppointmentConfirmed {
		t.Fatalf("status not applied")
	}

	entries, lErr := env.audit.List(context.Background(), salon.tenant.ID, 50)
	if lErr != nil {
		t.Fatalf("list audit: %v", lErr)
	}
	found := false
	for _, e := range entries {
		if e.Action == "appointment:status:confirmed" && e.AppointmentID != nil && *e.AppointmentID == appt.ID {
			found = true
			if e.ActorID != salon.manager.ID {
				t.Fatalf("audit actor should be the manager")
			}
		}
	}
	if !found {
		t.Fatalf("status change missing from the audit trail")
	}
}

func TestUpdateStatusDecisionsAreTerminal(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 5000, 50)
	mgrCtx := env.ctxFor(salon.manager, domain.ApprovalActive)

	appt, err := env.appointment.Create(env.ctxFor(pro, domain.ApprovalActive), CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Nadia",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, uErr := env.appointment.UpdateStatus(mgrCtx, appt.ID, domain.AppointmentPending, ""); !errors.Is(uErr, apierr.ErrValidation) {
		t.Fatalf("pending is not a decision target, got %v", uErr)
	}

	if _, uErr := env.appointment.UpdateStatus(mgrCtx, appt.ID, domain.AppointmentConfirmed, ""); uErr != nil {
		t.Fatalf("confirm: %v", uErr)
	}

	// Confirmed is terminal: the decision cannot be flipped afterwards.
	if _, uErr := env.appointment.UpdateStatus(mgrCtx, appt.ID, domain.AppointmentRejected, ""); !errors.Is(uErr, apierr.ErrValidation) {
		t.Fatalf("expected ErrValidation re-deciding a confirmed appointment, got %v", uErr)
	}
	reloaded, gErr := env.repos.Appointment.GetByIDs(context.Background(), nil, []uuid.UUID{appt.ID})
	if gErr != nil || len(reloaded) == 0 {
		t.Fatalf("reload appointment: %v", gErr)
	}
	if reloaded[0].Status != domain.AppointmentConfirmed {
		t.Fatalf("terminal status must survive, got %s", reloaded[0].Status)
	}
}

func TestUpdateStatusRecordsReason(t *testing.T) {
	env := newTestEnv(t)
	salon := env.seedSalon(t)
	pro := env.seedProfessional(t, salon, domain.ApprovalActive)
	svc := env.seedService(t, salon, 5000, 50)
	mgrCtx := env.ctxFor(salon.manager, domain.ApprovalActive)

	appt, err := env.appointment.Create(env.ctxFor(pro, domain.ApprovalActive), CreateAppointmentInput{
		ServiceID:     svc.ID,
		Date:          time.Now(),
		CustomerName:  "Otavio",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, uErr := env.appointment.UpdateStatus(mgrCtx, appt.ID, domain.AppointmentRejected, "no-show"); uErr != nil {
		t.Fatalf("reject: %v", uErr)
	}

	entries, lErr := env.audit.List(context.Background(), salon.tenant.ID, 50)
	if lErr != nil {
		t.Fatalf("list audit: %v", lErr)
	}
	for _, e := range entries {
		if e.Action == "appointment:status:rejected" && e.AppointmentID != nil && *e.AppointmentID == appt.ID {
			var meta map[string]any
			if jErr := json.Unmarshal(e.Metadata, &meta); jErr != nil {
				t.Fatalf("decode metadata: %v", jErr)
			}
			if meta["reason"] != "no-show" {
				t.Fatalf("expected the reason in the audit metadata, got %v", meta["reason"])
			}
			return
		}
	}
	t.Fatalf("rejection missing from the audit trail")
}

package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos/testutil"
	types "github.com/salonledger/salonledger-backend/internal/domain"
)

func seedAppointment(tenantID, professionalID uuid.UUID, price int, date time.Time) *types.Appointment {
	return &types.Appointment{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		ServiceID:      uuid.New(),
		Date:           date,
		CustomerName:   "cliente",
		Price:          price,
		CommissionRate: 50,
		PaymentMethod:  types.PaymentCash,
		Status:         types.AppointmentPending,
	}
}

func TestTransactionIDExistsIsTenantScoped(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewAppointmentRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	tenantA := uuid.New()
	tenantB := uuid.New()
	pro := uuid.New()

	appt := seedAppointment(tenantA, pro, 5000, time.Now())
	txid := "TX-" + uuid.New().String()
	appt.TransactionID = &txid
	if _, err := repo.Create(ctx, tx, []*types.Appointment{appt}); err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err := repo.TransactionIDExists(ctx, tx, tenantA, txid)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected transaction id to be found in its tenant")
	}

	exists, err = repo.TransactionIDExists(ctx, tx, tenantB, txid)
	if err != nil {
		t.Fatalf("exists other tenant: %v", err)
	}
	if exists {
		t.Fatalf("lookup must not cross tenants")
	}
}

func TestProofHashExistsIgnoresEmptyHash(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewAppointmentRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	tenantID := uuid.New()
	appt := seedAppointment(tenantID, uuid.New(), 4000, time.Now())
	if _, err := repo.Create(ctx, tx, []*types.Appointment{appt}); err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err := repo.ProofHashExists(ctx, tx, tenantID, "")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("unset proofs must never match each other")
	}
}

func TestListSamePriceSince(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewAppointmentRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	tenantID := uuid.New()
	pro := uuid.New()
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	rows := []*types.Appointment{
		seedAppointment(tenantID, pro, 5000, base),
		seedAppointment(tenantID, pro, 5000, base.Add(-3*time.Hour)),
		seedAppointment(tenantID, pro, 4500, base),
		seedAppointment(tenantID, uuid.New(), 5000, base),
	}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.ListSamePriceSince(ctx, tx, tenantID, pro, 5000, base.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected only the in-window same-price row, got %d", len(found))
	}
	if found[0].ID != rows[0].ID {
		t.Fatalf("wrong row returned")
	}
}

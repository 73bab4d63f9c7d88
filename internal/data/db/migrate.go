package db

import (
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll creates or updates every table in the schema. The unique
// indexes it lays down (account email, tenant code, appointment transaction
// id) are load-bearing: the intake pipeline relies on the transaction_id
// constraint, not its own pre-check, for duplicate rejection under
// concurrency.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.Tenant{},
		&types.Account{},
		&types.Profile{},
		&types.Service{},
		&types.Appointment{},
		&types.AuditLogEntry{},
		&types.ApprovalDecision{},

		&types.Availability{},
		&types.ScheduleBlock{},
		&types.AppointmentRequest{},
		&types.MediaUpload{},
	)
}

package repos

import (
	"github.com/salonledger/salonledger-backend/internal/data/repos/account"
	"github.com/salonledger/salonledger-backend/internal/data/repos/appointment"
	"github.com/salonledger/salonledger-backend/internal/data/repos/approval"
	"github.com/salonledger/salonledger-backend/internal/data/repos/audit"
	"github.com/salonledger/salonledger-backend/internal/data/repos/catalog"
	"github.com/salonledger/salonledger-backend/internal/data/repos/media"
	"github.com/salonledger/salonledger-backend/internal/data/repos/profile"
	"github.com/salonledger/salonledger-backend/internal/data/repos/schedule"
	"github.com/salonledger/salonledger-backend/internal/data/repos/tenant"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type TenantRepo = tenant.TenantRepo
type AccountRepo = account.AccountRepo
type ProfileRepo = profile.ProfileRepo
type ServiceRepo = catalog.ServiceRepo
type AppointmentRepo = appointment.AppointmentRepo
type AppointmentListFilter = appointment.ListFilter
type AuditLogRepo = audit.AuditLogRepo
type ApprovalDecisionRepo = approval.ApprovalDecisionRepo
type ScheduleRepo = schedule.ScheduleRepo
type MediaUploadRepo = media.MediaUploadRepo

var (
	NewTenantRepo           = tenant.NewTenantRepo
	NewAccountRepo          = account.NewAccountRepo
	NewProfileRepo          = profile.NewProfileRepo
	NewServiceRepo          = catalog.NewServiceRepo
	NewAppointmentRepo      = appointment.NewAppointmentRepo
	NewAuditLogRepo         = audit.NewAuditLogRepo
	NewApprovalDecisionRepo = approval.NewApprovalDecisionRepo
	NewScheduleRepo         = schedule.NewScheduleRepo
	NewMediaUploadRepo      = media.NewMediaUploadRepo
)

// Set bundles every repo for wiring.
type Set struct {
	Tenant      TenantRepo
	Account     AccountRepo
	Profile     ProfileRepo
	Service     ServiceRepo
	Appointment AppointmentRepo
	AuditLog    AuditLogRepo
	Approval    ApprovalDecisionRepo
	Schedule    ScheduleRepo
	Media       MediaUploadRepo
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Tenant:      NewTenantRepo(db, log),
		Account:     NewAccountRepo(db, log),
		Profile:     NewProfileRepo(db, log),
		Service:     NewServiceRepo(db, log),
		Appointment: NewAppointmentRepo(db, log),
		AuditLog:    NewAuditLogRepo(db, log),
		Approval:    NewApprovalDecisionRepo(db, log),
		Schedule:    NewScheduleRepo(db, log),
		Media:       NewMediaUploadRepo(db, log),
	}
}

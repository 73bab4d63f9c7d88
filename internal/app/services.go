package app

import (
	"os"

	"github.com/salonledger/salonledger-backend/internal/clients/redisbus"
	"github.com/salonledger/salonledger-backend/internal/clients/whatsapp"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/services"
	"gorm.io/gorm"
)

type Services struct {
	Bus         redisbus.AuditBus
	Token       services.TokenService
	Auth        services.AuthService
	Audit       services.AuditService
	Dedupe      services.DedupeService
	Appointment services.AppointmentService
	Approval    services.ApprovalService
	Catalog     services.CatalogService
	Stats       services.StatsService
	Schedule    services.ScheduleService
	Upload      services.UploadService
	Notifier    services.Notifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet repos.Set) (Services, error) {
	log.Info("Wiring services...")

	var bus redisbus.AuditBus
	if os.Getenv("REDIS_ADDR") != "" {
		var busErr error
		bus, busErr = redisbus.NewAuditBus(log)
		if busErr != nil {
			log.Warn("Audit bus disabled", "error", busErr)
			bus = nil
		}
	}

	var wa whatsapp.Client
	if whatsapp.Configured() {
		var waErr error
		wa, waErr = whatsapp.NewFromEnv(log)
		if waErr != nil {
			log.Warn("WhatsApp notifications disabled", "error", waErr)
			wa = nil
		}
	}

	var bucketService services.BucketService
	if os.Getenv("GCS_BUCKET_NAME") != "" {
		var bErr error
		bucketService, bErr = services.NewBucketService(log)
		if bErr != nil {
			log.Warn("Bucket service disabled", "error", bErr)
			bucketService = nil
		}
	}

	tokenService := services.NewTokenService(log, cfg.JWTSecretKey, cfg.AccessTTL)
	auditService := services.NewAuditService(log, reposet.AuditLog, bus)
	notifier := services.NewNotifier(log, wa, reposet.Tenant, reposet.Account)
	authService := services.NewAuthService(db, log, reposet.Account, reposet.Profile, reposet.Tenant, tokenService, auditService, notifier)
	dedupeService := services.NewDedupeService(log, reposet.Appointment, cfg.DedupeWindow)
	appointmentService := services.NewAppointmentService(db, log, reposet.Appointment, reposet.Service, reposet.Account, dedupeService, auditService, notifier)
	approvalService := services.NewApprovalService(db, log, reposet.Account, reposet.Profile, reposet.Approval, auditService)
	catalogService := services.NewCatalogService(db, log, reposet.Service, auditService)
	statsService := services.NewStatsService(log, reposet.Appointment, reposet.Account)
	scheduleService := services.NewScheduleService(db, log, reposet.Schedule, auditService)
	uploadService := services.NewUploadService(db, log, bucketService, reposet.Media, reposet.Account)

	return Services{
		Bus:         bus,
		Token:       tokenService,
		Auth:        authService,
		Audit:       auditService,
		Dedupe:      dedupeService,
		Appointment: appointmentService,
		Approval:    approvalService,
		Catalog:     catalogService,
		Stats:       statsService,
		Schedule:    scheduleService,
		Upload:      uploadService,
		Notifier:    notifier,
	}, nil
}

package app

import (
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/http"
	httpH "github.com/salonledger/salonledger-backend/internal/http/handlers"
	httpMW "github.com/salonledger/salonledger-backend/internal/http/middleware"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/ratelimit"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	Me          *httpH.MeHandler
	Service     *httpH.ServiceHandler
	Appointment *httpH.AppointmentHandler
	Approval    *httpH.ApprovalHandler
	Stats       *httpH.StatsHandler
	Schedule    *httpH.ScheduleHandler
	Upload      *httpH.UploadHandler
	Audit       *httpH.AuditHandler
}

func wireHandlers(log *logger.Logger, services Services, reposet repos.Set) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(services.Auth),
		Me:          httpH.NewMeHandler(reposet.Account, reposet.Profile, reposet.Tenant),
		Service:     httpH.NewServiceHandler(services.Catalog),
		Appointment: httpH.NewAppointmentHandler(services.Appointment),
		Approval:    httpH.NewApprovalHandler(services.Approval),
		Stats:       httpH.NewStatsHandler(services.Stats),
		Schedule:    httpH.NewScheduleHandler(services.Schedule),
		Upload:      httpH.NewUploadHandler(services.Upload),
		Audit:       httpH.NewAuditHandler(services.Audit),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:                log,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		AuthMiddleware:     middleware.Auth,
		LoginLimiter:       ratelimit.New(cfg.LoginLimit, cfg.LoginWindow),
		UploadLimiter:      ratelimit.New(cfg.UploadLimit, cfg.UploadWindow),
		MeHandler:          handlers.Me,
		ServiceHandler:     handlers.Service,
		AppointmentHandler: handlers.Appointment,
		ApprovalHandler:    handlers.Approval,
		StatsHandler:       handlers.Stats,
		ScheduleHandler:    handlers.Schedule,
		UploadHandler:      handlers.Upload,
		AuditHandler:       handlers.Audit,
	})
}

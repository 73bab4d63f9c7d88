package http

import (
	"github.com/gin-gonic/gin"
	httpH "github.com/salonledger/salonledger-backend/internal/http/handlers"
	httpMW "github.com/salonledger/salonledger-backend/internal/http/middleware"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/ratelimit"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	LoginLimiter  *ratelimit.Limiter
	UploadLimiter *ratelimit.Limiter

	MeHandler          *httpH.MeHandler
	ServiceHandler     *httpH.ServiceHandler
	AppointmentHandler *httpH.AppointmentHandler
	ApprovalHandler    *httpH.ApprovalHandler
	StatsHandler       *httpH.StatsHandler
	ScheduleHandler    *httpH.ScheduleHandler
	UploadHandler      *httpH.UploadHandler
	AuditHandler       *httpH.AuditHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public, rate limited)
		if cfg.AuthHandler != nil {
			auth := api.Group("/auth")
			if cfg.LoginLimiter != nil {
				auth.Use(httpMW.RateLimit(cfg.LoginLimiter, "auth"))
			}
			auth.POST("/register/manager", cfg.AuthHandler.RegisterManager)
			auth.POST("/register/professional", cfg.AuthHandler.RegisterProfessional)
			auth.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		if cfg.MeHandler != nil {
			protected.GET("/me", cfg.MeHandler.GetMe)
		}

		// Catalog
		if cfg.ServiceHandler != nil {
			protected.GET("/services", cfg.ServiceHandler.List)
			protected.POST("/services", httpMW.RequireManager(), cfg.ServiceHandler.Create)
			protected.PATCH("/services/:id", httpMW.RequireManager(), cfg.ServiceHandler.Update)
			protected.DELETE("/services/:id", httpMW.RequireManager(), cfg.ServiceHandler.Delete)
		}

		// Appointments
		if cfg.AppointmentHandler != nil {
			protected.GET("/appointments", cfg.AppointmentHandler.List)
			protected.POST("/appointments", httpMW.RequireActive(), cfg.AppointmentHandler.Create)
			protected.PATCH("/appointments/:id/status", httpMW.RequireManager(), cfg.AppointmentHandler.UpdateStatus)
		}

		// Registration approvals
		if cfg.ApprovalHandler != nil {
			protected.GET("/approvals", httpMW.RequireManager(), cfg.ApprovalHandler.ListPending)
			protected.POST("/approvals/:id/decide", httpMW.RequireManager(), cfg.ApprovalHandler.Decide)
		}

		// Stats
		if cfg.StatsHandler != nil {
			protected.GET("/stats", httpMW.RequireManager(), cfg.StatsHandler.Dashboard)
		}

		// Schedule
		if cfg.ScheduleHandler != nil {
			protected.GET("/schedule/availability", cfg.ScheduleHandler.ListAvailability)
			protected.POST("/schedule/availability", httpMW.RequireActive(), cfg.ScheduleHandler.SetAvailability)
			protected.GET("/schedule/blocks", cfg.ScheduleHandler.ListBlocks)
			protected.POST("/schedule/blocks", httpMW.RequireActive(), cfg.ScheduleHandler.AddBlock)
			protected.GET("/schedule/requests", cfg.ScheduleHandler.ListRequests)
			protected.POST("/schedule/requests", cfg.ScheduleHandler.CreateRequest)
			protected.PATCH("/schedule/requests/:id/status", httpMW.RequireActive(), cfg.ScheduleHandler.DecideRequest)
		}

		// Uploads (rate limited)
		if cfg.UploadHandler != nil {
			uploads := protected.Group("/uploads")
			if cfg.UploadLimiter != nil {
				uploads.Use(httpMW.RateLimit(cfg.UploadLimiter, "uploads"))
			}
			uploads.POST("", httpMW.RequireActive(), cfg.UploadHandler.Upload)
			uploads.GET("", httpMW.RequireManager(), cfg.UploadHandler.List)
		}

		// Audit trail
		if cfg.AuditHandler != nil {
			protected.GET("/audit", httpMW.RequireManager(), cfg.AuditHandler.List)
		}
	}

	return r
}

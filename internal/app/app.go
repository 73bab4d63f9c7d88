package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/salonledger/salonledger-backend/internal/data/db"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/http"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    repos.Set
	Services Services

	busCancel context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := repos.NewSet(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset, reposet)
	middleware := wireMiddleware(log, serviceset)
	server := wireRouter(log, cfg, handlerset, middleware)

	var busCancel context.CancelFunc
	if serviceset.Bus != nil {
		busCtx, cancel := context.WithCancel(context.Background())
		busCancel = cancel
		streamLog := log.With("stream", "audit")
		err := serviceset.Bus.StartForwarder(busCtx, func(entry *domain.AuditLogEntry) {
			streamLog.Info("Audit event",
				"action", entry.Action,
				"tenant_id", entry.TenantID,
				"actor_id", entry.ActorID,
			)
		})
		if err != nil {
			log.Warn("Audit stream follower disabled", "error", err)
			cancel()
			busCancel = nil
		}
	}

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,

		busCancel: busCancel,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "address", a.Cfg.ListenAddress)
	return a.Server.Run(a.Cfg.ListenAddress)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.busCancel != nil {
		a.busCancel()
	}
	if a.Services.Bus != nil {
		if err := a.Services.Bus.Close(); err != nil {
			a.Log.Warn("Audit bus close", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"biztrack/internal/adapters/web"
	"biztrack/internal/ai"
	"biztrack/internal/auth"
	"biztrack/internal/config"
	"biztrack/internal/core"
	"biztrack/internal/db"
	"biztrack/internal/report"
	"biztrack/internal/scheduler"
	"biztrack/pkg/logger"
)

func main() {
	log := logger.Must()
	defer log.Sync()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Persistence: Postgres when configured, otherwise an in-memory
	// store for development.
	var persister core.Persister
	if cfg.Database.URL != "" {
		pool, err := db.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		stateStore := db.NewStateStore(pool)
		if err := stateStore.Init(ctx); err != nil {
			log.Fatal("failed to initialize state table", zap.Error(err))
		}
		persister = stateStore
		log.Info("using postgres persistence")
	} else {
		persister = core.NewMemoryPersister()
		log.Warn("DATABASE_URL not set, data will not survive restarts")
	}

	store := core.NewStore(persister)
	if err := store.Load(ctx); err != nil {
		log.Fatal("failed to load application state", zap.Error(err))
	}

	ledgerSvc := core.NewLedger(store)
	catalogSvc := core.NewCatalog(store)
	expenseSvc := core.NewExpenses(store)
	contactSvc := core.NewContacts(store)
	settingsSvc := core.NewSettings(store)
	metricsSvc := core.NewMetrics(store)
	userSvc := core.NewUsers(store)

	if err := userSvc.EnsureAdmin(ctx, cfg.Auth.AdminUser, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("failed to seed admin account", zap.Error(err))
	}

	exportSvc := report.NewExportService(store, metricsSvc)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, 24*time.Hour)

	var advisor ai.AdvisorService
	if cfg.AI.OpenAIKey != "" {
		advisor = ai.NewAdvisor(cfg.AI.OpenAIKey)
	} else {
		log.Warn("OPENAI_API_KEY not set, AI analysis disabled")
	}

	sched := scheduler.New(metricsSvc, cfg.Scheduler.LowStockCron, logger.Named(log, "scheduler"))
	sched.Start()
	defer sched.Stop()

	router := web.NewRouter(web.Services{
		Ledger:   ledgerSvc,
		Catalog:  catalogSvc,
		Expenses: expenseSvc,
		Contacts: contactSvc,
		Settings: settingsSvc,
		Metrics:  metricsSvc,
		Users:    userSvc,
		Export:   exportSvc,
		Advisor:  advisor,
		Tokens:   tokens,
		Logger:   logger.Named(log, "http"),
	}, cfg.Server.AllowedOrigins)

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

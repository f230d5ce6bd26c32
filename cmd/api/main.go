package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ecclesia-app/ecclesia-backend/api/routes"
	"github.com/ecclesia-app/ecclesia-backend/internal/auth"
	"github.com/ecclesia-app/ecclesia-backend/internal/events"
	"github.com/ecclesia-app/ecclesia-backend/internal/inventory"
	"github.com/ecclesia-app/ecclesia-backend/internal/members"
	"github.com/ecclesia-app/ecclesia-backend/internal/ministries"
	"github.com/ecclesia-app/ecclesia-backend/internal/scheduler"
	"github.com/ecclesia-app/ecclesia-backend/internal/schedules"
	"github.com/ecclesia-app/ecclesia-backend/pkg/auth/session"
	"github.com/ecclesia-app/ecclesia-backend/pkg/config"
	"github.com/ecclesia-app/ecclesia-backend/pkg/db"
	"github.com/ecclesia-app/ecclesia-backend/pkg/logger"
	"github.com/ecclesia-app/ecclesia-backend/pkg/metrics"
	"github.com/ecclesia-app/ecclesia-backend/pkg/migrate"
	"github.com/ecclesia-app/ecclesia-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	schedulerMetrics := metrics.NewSchedulerMetrics(registry)

	gormDB := dbClient.DB()
	memberRepo := members.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		MemberRepo:     memberRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	memberService, err := members.NewService(memberRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create members service", err)
		os.Exit(1)
	}

	ministryService, err := ministries.NewService(ministries.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create ministries service", err)
		os.Exit(1)
	}

	scheduleService, err := schedules.NewService(schedules.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create schedules service", err)
		os.Exit(1)
	}

	schedulerService, err := scheduler.NewService(scheduler.Params{
		Repo:         scheduler.NewRepository(gormDB),
		Metrics:      schedulerMetrics,
		MaxRangeDays: cfg.Scheduler.MaxRangeDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler service", err)
		os.Exit(1)
	}

	eventService, err := events.NewService(events.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			DB:             dbClient,
			Redis:          redisClient,
			SessionManager: sessionManager,
			Metrics:        registry,
			Auth:           authService,
			Members:        memberService,
			Ministries:     ministryService,
			Schedules:      scheduleService,
			Scheduler:      schedulerService,
			Events:         eventService,
			Inventory:      inventoryService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

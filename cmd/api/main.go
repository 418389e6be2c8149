package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/request-analytics/internal/api/http"
	"github.com/spec-kit/request-analytics/internal/api/http/handlers"
	"github.com/spec-kit/request-analytics/internal/auth"
	"github.com/spec-kit/request-analytics/internal/cache"
	"github.com/spec-kit/request-analytics/internal/config"
	"github.com/spec-kit/request-analytics/internal/events"
	"github.com/spec-kit/request-analytics/internal/observability"
	"github.com/spec-kit/request-analytics/internal/persistence"
	"github.com/spec-kit/request-analytics/internal/repository"
	"github.com/spec-kit/request-analytics/internal/service"
	"github.com/spec-kit/request-analytics/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	if pg.PoolHandle() != nil {
		if err := pg.CheckSchema(ctx); err != nil {
			logger.Fatal("analytics schema incomplete", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
	})
	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		RequestRepo: repository.NewRequestRepository(pool),
		ContactRepo: repository.NewContactRepository(pool),
		Cache:       cache.NewReportCache(redis.Handle(), cfg.Analytics.CacheTTL()),
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
		Location:    cfg.Analytics.Location,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var redisProbe handlers.Pinger
	if redis.Handle() != nil {
		redisProbe = redis
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisProbe),
		Staff:          handlers.NewStaffHandler(authService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
	logger.Info("shutdown complete", zap.Any("metrics", metrics.Snapshot()))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

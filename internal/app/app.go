package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/schoolfit/fitness-server/internal/config"
	"github.com/schoolfit/fitness-server/internal/httpapi"
	"github.com/schoolfit/fitness-server/internal/repository"
	"github.com/schoolfit/fitness-server/internal/service"
	"github.com/schoolfit/fitness-server/pkg/cache"
	dbbuilder "github.com/schoolfit/fitness-server/pkg/database"
	"github.com/schoolfit/fitness-server/pkg/httpserver"
	"github.com/schoolfit/fitness-server/pkg/metrics"
)

const metricsNamespace = "fitness"

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	redis      *cache.Redis
	httpServer *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("database pool initialized", zap.String("path", cfg.DBPath))

	redisClient, err := cache.NewRedis(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("response cache init failed: %w", err)
	}
	logger.Info("response cache initialized", zap.String("addr", cfg.RedisAddr))

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(metricsNamespace, registry)

	provider := repository.NewResultRepository(dbPool)

	fetcher := service.NewPagedFetcher(provider, logger, collector, service.FetcherConfig{
		PageSize:    cfg.PageSize,
		MaxParallel: cfg.MaxParallelFetches,
		BatchPause:  cfg.FetchBatchPause,
	})

	store := cache.NewStore(cfg.CacheCapacity)

	statsService := service.NewStatisticsService(provider, fetcher, store, logger, cfg.CacheTTL)

	handlers := httpapi.NewHandlers(statsService, redisClient, logger, collector, cfg.ResponseCacheTTL)

	router := mux.NewRouter()
	handlers.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	httpServer, err := httpserver.New(
		httpserver.WithPort(cfg.HTTPPort),
		httpserver.WithLogger(logger),
		httpserver.WithHandler(router),
		httpserver.WithLogging(true),
	)
	if err != nil {
		redisClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		redis:      redisClient,
		httpServer: httpServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.httpServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("response cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")

	_ = a.logger.Sync()
	return nil
}

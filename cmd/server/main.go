package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"jobboard/internal/access"
	"jobboard/internal/api"
	"jobboard/internal/api/middleware"
	"jobboard/internal/applicants"
	"jobboard/internal/config"
	"jobboard/internal/logger"
	"jobboard/internal/metrics"
	"jobboard/internal/pipeline"
	"jobboard/internal/storage/memory"
	"jobboard/internal/storage/postgres"
	"jobboard/internal/storage/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// store is everything the services need from a storage driver.
type store interface {
	applicants.Store
	pipeline.Store
	access.Store
	Ping(ctx context.Context) error
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) (err error) {
	log.Info("starting applicant service",
		zap.String("log_level", cfg.LogLevel),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.Bool("redis_enabled", cfg.RedisEnabled),
		zap.Bool("pipeline_enforce_order", cfg.PipelineEnforceOrder),
	)

	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, st.Close()) }()

	m := metrics.New()
	checks := map[string]api.Pinger{"store": st}

	listOpts := []applicants.Option{
		applicants.WithRecorder(m),
		applicants.WithLogger(log),
	}
	engineOpts := []pipeline.Option{
		pipeline.WithEnforcedOrder(cfg.PipelineEnforceOrder),
		pipeline.WithRecorder(m),
		pipeline.WithLogger(log),
	}

	var limiter middleware.Limiter
	if cfg.RedisEnabled {
		log.Info("connecting to Redis...")
		cache, cerr := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheListTTL, log)
		if cerr != nil {
			return fmt.Errorf("connect redis: %w", cerr)
		}
		defer func() { err = multierr.Append(err, cache.Close()) }()

		listOpts = append(listOpts, applicants.WithCache(cache))
		engineOpts = append(engineOpts, pipeline.WithInvalidator(cache))
		limiter = cache
		checks["cache"] = cache
	}

	handler := api.NewHandler(
		applicants.NewService(st, listOpts...),
		pipeline.NewEngine(st, engineOpts...),
		access.NewChecker(st, log),
		applicants.Limits{Default: cfg.PageDefaultLimit, Max: cfg.PageMaxLimit},
		checks,
		log,
	)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(handler, api.RouterConfig{
			CORSOrigins:        cfg.CORSOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			Limiter:            limiter,
			Metrics:            m,
			Logger:             log,
		}),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	log.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config, log *zap.Logger) (store, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return memory.New(log), nil
	default:
		log.Info("connecting to PostgreSQL...")
		st, err := postgres.New(cfg.PostgresDSN, postgres.PoolConfig{
			MaxOpenConns:    cfg.PostgresMaxOpenConns,
			MaxIdleConns:    cfg.PostgresMaxIdleConns,
			ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return st, nil
	}
}

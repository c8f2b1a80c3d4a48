package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/adapters/out/postgres"
	"shiptrack/internal/adapters/out/redis"
	"shiptrack/internal/core/ports"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Runtime holds the process-wide resources of one command invocation.
type Runtime struct {
	Config Config
	Logger *zap.Logger
	DB     *gorm.DB
	Root   *CompositionRoot

	closers []func() error
}

// Bootstrap loads configuration, then opens the logger, the database and the
// tracking cache.
func Bootstrap(ctx context.Context, envFile string) (*Runtime, error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := postgres.Open(cfg.DB, NewGormLogger(logger))
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	rt := &Runtime{Config: cfg, Logger: logger, DB: db}
	rt.closers = append(rt.closers, func() error { return postgres.Close(db) })

	cache, closeCache := NewTrackingCache(ctx, cfg, logger)
	rt.closers = append(rt.closers, closeCache)

	rt.Root = NewCompositionRoot(cfg, db, cache, logger)
	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (r *Runtime) Close() error {
	var problems []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		problems = append(problems, r.closers[i]())
	}
	_ = r.Logger.Sync()
	return errors.Join(problems...)
}

// NewLogger builds a production zap logger at level.
func NewLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}

// NewGormLogger routes gorm's warnings and slow queries into logger.
func NewGormLogger(logger *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(logger.With(zap.String("component", "gorm"))),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// NewTrackingCache connects to Redis when REDIS_ADDR is set. An unreachable
// Redis is logged and kept: lookups fall back to the database until it
// answers.
func NewTrackingCache(ctx context.Context, cfg Config, logger *zap.Logger) (ports.TrackingCache, func() error) {
	if cfg.Redis.Addr == "" {
		logger.Info("Tracking cache disabled")
		return redis.NoopCache{}, func() error { return nil }
	}

	cache := redis.NewCache(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		logger.Warn("Redis is not reachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	return cache, cache.Close
}

// Package bootstrap wires runtime dependencies (database, Redis, tracing)
// for the server and CLI entry points.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"circle/internal/cache"
	"circle/internal/config"
	"circle/internal/database"
	"circle/internal/observability"
	"circle/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo populates an empty development database with demo data.
	SeedDemo bool
}

// Runtime holds the initialized shared dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	shutdownTracing func(context.Context) error
}

// InitRuntime connects to the database and Redis, initializes tracing, and
// optionally seeds demo data in development.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; the app degrades.
	cache.InitRedis(cfg.RedisURL)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "circle-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSample,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing initialization failed: %w", err)
	}

	if opts.SeedDemo {
		if err := seedDemoData(cfg, db); err != nil {
			return nil, fmt.Errorf("demo seeding failed: %w", err)
		}
	}

	return &Runtime{
		DB:              db,
		Redis:           cache.GetClient(),
		shutdownTracing: shutdownTracing,
	}, nil
}

// Shutdown flushes and releases runtime resources not owned by the server.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r.shutdownTracing != nil {
		return r.shutdownTracing(ctx)
	}
	return nil
}

// seedDemoData runs the demo seeder once against an empty development
// database. Non-development environments are never seeded.
func seedDemoData(cfg *config.Config, db *gorm.DB) error {
	if cfg.Env != "development" {
		return nil
	}

	var users int64
	if err := db.Table("users").Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	log.Println("Empty development database, seeding demo data...")
	return seed.Seed(db, seed.Options{NumUsers: 25, NumPosts: 100})
}

package guardkit

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/auditlog"
	"github.com/dmitrymomot/guardkit/pkg/config"
	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/pg"
	"github.com/dmitrymomot/guardkit/pkg/redisconn"
	"github.com/dmitrymomot/guardkit/pkg/seclevel"
)

// Config is the environment configuration for the stock deployment:
// policies and audit entries in Postgres, resolved levels cached in
// Redis.
type Config struct {
	Postgres pg.Config
	Redis    redisconn.Config

	TopGroup      string        `env:"GUARDKIT_TOP_GROUP" envDefault:"administrators"`
	LevelCacheTTL time.Duration `env:"GUARDKIT_LEVEL_CACHE_TTL" envDefault:"5m"`
	RunMigrations bool          `env:"GUARDKIT_RUN_MIGRATIONS" envDefault:"false"`
}

// NewFromEnv builds a Service from environment variables: it connects to
// Postgres and Redis, optionally runs migrations, and wires the
// Postgres-backed source and storage with a Redis level cache. The
// returned closer releases both connections.
func NewFromEnv(ctx context.Context, opts ...Option) (*Service, func(), error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New()

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.RunMigrations {
		if err := pg.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	client, err := redisconn.Connect(ctx, cfg.Redis)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	opts = append([]Option{
		WithLogger(log),
		WithLevelCache(seclevel.NewRedisCache(client, cfg.LevelCacheTTL, log)),
		WithHealthchecks(pg.Healthcheck(pool), redisconn.Healthcheck(client)),
	}, opts...)

	svc := New(
		seclevel.NewPostgresSource(pool),
		auditlog.NewPostgresStorage(pool),
		cfg.TopGroup,
		opts...,
	)

	closer := func() {
		_ = client.Close()
		pool.Close()
	}
	return svc, closer, nil
}

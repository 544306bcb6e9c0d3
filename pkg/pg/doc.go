// Package pg provides PostgreSQL connectivity for the engine's persistent
// stores using the pgx/v5 driver: pooled connections with startup retry,
// goose SQL migrations, a health probe, and error classification helpers.
//
// Configuration comes from environment variables through the Config struct:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil { ... }
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
package pg

package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a traced pgx connection pool and verifies connectivity with
// exponential backoff, so the service tolerates the database starting after it.
func NewPool(ctx context.Context, dsn string, maxElapsed time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("op=postgres.parse_config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("op=postgres.new_pool: %w", err)
	}

	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = maxElapsed
	ping := func() error {
		if err := pool.Ping(ctx); err != nil {
			slog.Warn("database not ready, retrying", slog.Any("error", err))
			return err
		}
		return nil
	}
	if err := backoff.Retry(ping, backoff.WithContext(expo, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("op=postgres.ping: %w", err)
	}
	return pool, nil
}

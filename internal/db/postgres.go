package db

import (
	"context"
	"time"

	"backend-trailmap/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a pool for the authored route metadata. An
// empty POSTGRES_URL means the deployment uses the file source instead.
func ConnectPostgres(cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.PostgresURL == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

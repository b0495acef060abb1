package nlogin

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LeonardoRRC/nLogin-Composer/internal/app"
	"github.com/LeonardoRRC/nLogin-Composer/nlogin/account"
	"github.com/LeonardoRRC/nLogin-Composer/nlogin/hashalg"
)

// Open wires the full stack from config: connection pool, Postgres
// store, algorithm registry (env-configured), logger, and Service. The
// returned pool is owned by the caller and must be closed when done.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Service, *pgxpool.Pool, error) {
	pool, err := account.NewPool(ctx, account.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
	})
	if err != nil {
		return nil, nil, err
	}

	store, err := account.NewPostgresStore(pool,
		account.WithSchema(cfg.DBSchema),
		account.WithTable(cfg.DBTable),
		account.WithStrictNameLookup(cfg.StrictNameLookup),
	)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	hcfg, err := hashalg.FromEnv()
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	registry, err := hashalg.NewRegistry(hcfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	base := []Option{
		WithLogger(app.NewLogger(cfg.LogLevel)),
		WithDefaultIP(cfg.DefaultIP),
	}
	svc, err := NewService(store, registry, append(base, opts...)...)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return svc, pool, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"chakai-booking/pkg/utils"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier is the statement surface shared by the pool and a pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgxIface is what repositories and the tx manager need from the pool.
type PgxIface interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

const (
	connectTries   = 6
	connectTimeout = 5 * time.Second
)

// InitDB opens the pool and waits for Postgres to answer, retrying with
// exponential backoff while the server is still starting.
func InitDB(ctx context.Context, config utils.DatabaseConfig, log *zap.Logger) (PgxIface, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s application_name=%s",
		config.Host, config.Port, config.Name, config.User, config.Password, sslMode(config), "chakai-booking")

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	attempt := 0
	_, err = backoff.Retry[struct{}](ctx, func() (struct{}, error) {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		if err := pool.Ping(pingCtx); err != nil {
			log.Warn("Database not ready", zap.Int("attempt", attempt), zap.Error(err))
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(connectTries))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func sslMode(config utils.DatabaseConfig) string {
	if config.SSLMode == "" {
		return "disable"
	}
	return config.SSLMode
}

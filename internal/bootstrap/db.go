package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBOptions configures the pgx pool used for health checks and
// aggregate stats queries. Zero timeouts fall back to defaults.
type DBOptions struct {
	DSN            string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// OpenDB opens a pgx pool against the relief database and verifies
// connectivity with a bounded ping before handing it back.
func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	if opt.DSN == "" {
		return nil, errors.New("postgres DSN is empty")
	}
	if opt.ConnectTimeout == 0 {
		opt.ConnectTimeout = 5 * time.Second
	}
	if opt.PingTimeout == 0 {
		opt.PingTimeout = 2 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, opt.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, opt.PingTimeout)
	defer pingCancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

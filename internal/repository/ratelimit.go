package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RateLimits struct {
	pool *pgxpool.Pool
}

func NewRateLimits(pool *pgxpool.Pool) *RateLimits {
	return &RateLimits{pool: pool}
}

// Hit records one request for the session in the current minute window and
// returns the running count for that window.
func (r *RateLimits) Hit(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO rate_limits (session_id, window_start)
		 VALUES ($1, date_trunc('minute', now()))
		 ON CONFLICT (session_id, window_start)
		 DO UPDATE SET count = rate_limits.count + 1
		 RETURNING count`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment rate limit: %w", err)
	}
	return count, nil
}

// CleanupExpired drops windows old enough to be irrelevant.
func (r *RateLimits) CleanupExpired(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM rate_limits WHERE window_start < now() - interval '5 minutes'`)
	if err != nil {
		return fmt.Errorf("cleanup rate limits: %w", err)
	}
	return nil
}

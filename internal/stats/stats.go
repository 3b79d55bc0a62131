package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Overview is the admin dashboard counter set.
type Overview struct {
	TotalRequests       int     `json:"total_requests"`
	PendingRequests     int     `json:"pending_requests"`
	ActiveVolunteers    int     `json:"active_volunteers"`
	ActiveCalls         int     `json:"active_calls"`
	PendingApplications int     `json:"pending_applications"`
	TotalResourceUnits  int     `json:"total_resource_units"`
	TotalRaised         float64 `json:"total_raised"`
}

// Repo computes dashboard aggregates. Reads only; it shares no state with
// the transactional repositories.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Collect(ctx context.Context) (*Overview, error) {
	const q = `
SELECT
    (SELECT COUNT(*) FROM victim_requests),
    (SELECT COUNT(*) FROM victim_requests WHERE status = 'pending'),
    (SELECT COUNT(*) FROM volunteers WHERE is_active),
    (SELECT COUNT(*) FROM volunteer_calls WHERE status = 'active'),
    (SELECT COUNT(*) FROM volunteer_call_applications WHERE status = 'pending'),
    (SELECT COALESCE(SUM(quantity), 0) FROM resources),
    (SELECT COALESCE(SUM(raised_amount), 0) FROM fundraisers);
`
	var o Overview
	err := r.pool.QueryRow(ctx, q).Scan(
		&o.TotalRequests,
		&o.PendingRequests,
		&o.ActiveVolunteers,
		&o.ActiveCalls,
		&o.PendingApplications,
		&o.TotalResourceUnits,
		&o.TotalRaised,
	)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	return &o, nil
}

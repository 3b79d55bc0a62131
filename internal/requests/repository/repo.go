package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/domain"
)

const requestColumns = `id, user_id, location, description, urgent_needs, status, assigned_volunteer_id, request_date, updated_at`

// RequestRepository provides persistence operations for victim requests
type RequestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request in the pending state.
func (r *RequestRepository) Create(ctx context.Context, userID, location, description string, urgentNeeds *string) (*domain.VictimRequest, error) {
	const q = `
INSERT INTO victim_requests (id, user_id, location, description, urgent_needs)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + requestColumns + `;`

	row := r.db.QueryRowContext(ctx, q, uuid.New().String(), userID, location, description, urgentNeeds)
	req, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("insert victim request: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.VictimRequest, error) {
	const q = `SELECT ` + requestColumns + ` FROM victim_requests WHERE id = $1;`

	req, err := scanRequest(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get victim request: %w", err)
	}
	return req, nil
}

// ListByUser returns the caller's own requests, newest first.
func (r *RequestRepository) ListByUser(ctx context.Context, userID string) ([]domain.VictimRequest, error) {
	const q = `
SELECT ` + requestColumns + `
FROM victim_requests
WHERE user_id = $1
ORDER BY request_date DESC;`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list victim requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// List returns all requests, optionally filtered by status, newest first.
func (r *RequestRepository) List(ctx context.Context, status string) ([]domain.VictimRequest, error) {
	const q = `
SELECT ` + requestColumns + `
FROM victim_requests
WHERE ($1 = '' OR status = $1)
ORDER BY request_date DESC;`

	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, fmt.Errorf("list victim requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// Transition moves a request along a legal lifecycle edge. The request row
// is locked for the duration so concurrent transitions serialize; the edge
// is validated against the locked state, not a stale read. Moving into
// in_progress requires an active volunteer, checked inside the same
// transaction.
func (r *RequestRepository) Transition(ctx context.Context, id, newStatus string, assignedVolunteerID *string) (*domain.VictimRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transition: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM victim_requests WHERE id = $1 FOR UPDATE;`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock victim request: %w", err)
	}

	if !domain.CanTransition(current, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, newStatus)
	}

	var volunteerID *string
	if newStatus == domain.StatusInProgress {
		if assignedVolunteerID == nil || *assignedVolunteerID == "" {
			return nil, fmt.Errorf("%w: assigned volunteer required for in_progress", domain.ErrInvalidInput)
		}
		var active bool
		err = tx.QueryRowContext(ctx,
			`SELECT is_active FROM volunteers WHERE id = $1;`, *assignedVolunteerID).Scan(&active)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.ErrVolunteerInactive
			}
			return nil, fmt.Errorf("check volunteer: %w", err)
		}
		if !active {
			return nil, domain.ErrVolunteerInactive
		}
		volunteerID = assignedVolunteerID
	}

	const q = `
UPDATE victim_requests
SET status = $2,
    assigned_volunteer_id = CASE
        WHEN $2 IN ('in_progress', 'completed') THEN COALESCE($3, assigned_volunteer_id)
        ELSE NULL
    END,
    updated_at = now()
WHERE id = $1
RETURNING ` + requestColumns + `;`

	req, err := scanRequest(tx.QueryRowContext(ctx, q, id, newStatus, volunteerID))
	if err != nil {
		return nil, fmt.Errorf("update victim request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return req, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.VictimRequest, error) {
	var req domain.VictimRequest
	var urgentNeeds, volunteerID sql.NullString
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Location,
		&req.Description,
		&urgentNeeds,
		&req.Status,
		&volunteerID,
		&req.RequestDate,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if urgentNeeds.Valid {
		req.UrgentNeeds = &urgentNeeds.String
	}
	if volunteerID.Valid {
		req.AssignedVolunteerID = &volunteerID.String
	}
	return &req, nil
}

func collectRequests(rows *sql.Rows) ([]domain.VictimRequest, error) {
	out := make([]domain.VictimRequest, 0, 16)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrRequestNotFound = errors.New("victim request not found")

// Report is a progress note filed against a victim request, by the
// requester or by a volunteer working it.
type Report struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	UserID      *string   `json:"user_id,omitempty"`
	VolunteerID *string   `json:"volunteer_id,omitempty"`
	Report      string    `json:"report"`
	ReportDate  time.Time `json:"report_date"`
}

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, requestID, userID, body string) (*Report, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM victim_requests WHERE id = $1);`, requestID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check request: %w", err)
	}
	if !exists {
		return nil, ErrRequestNotFound
	}

	// Attach the caller's volunteer record when they have one.
	var volunteerID sql.NullString
	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM volunteers WHERE user_id = $1;`, userID).Scan(&volunteerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup volunteer: %w", err)
	}

	const q = `
INSERT INTO reports (id, request_id, user_id, volunteer_id, report)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, request_id, user_id, volunteer_id, report, report_date;`

	var rep Report
	var uid, vid sql.NullString
	err = r.db.QueryRowContext(ctx, q, uuid.New().String(), requestID, userID, volunteerID, body).
		Scan(&rep.ID, &rep.RequestID, &uid, &vid, &rep.Report, &rep.ReportDate)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	if uid.Valid {
		rep.UserID = &uid.String
	}
	if vid.Valid {
		rep.VolunteerID = &vid.String
	}
	return &rep, nil
}

func (r *Repo) ListByRequest(ctx context.Context, requestID string) ([]Report, error) {
	const q = `
SELECT id, request_id, user_id, volunteer_id, report, report_date
FROM reports
WHERE request_id = $1
ORDER BY report_date DESC;`

	rows, err := r.db.QueryContext(ctx, q, requestID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]Report, 0, 8)
	for rows.Next() {
		var rep Report
		var uid, vid sql.NullString
		if err := rows.Scan(&rep.ID, &rep.RequestID, &uid, &vid, &rep.Report, &rep.ReportDate); err != nil {
			return nil, err
		}
		if uid.Valid {
			rep.UserID = &uid.String
		}
		if vid.Valid {
			rep.VolunteerID = &vid.String
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

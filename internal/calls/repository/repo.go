package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/domain"
)

const callColumns = `id, disaster_name, disaster_location, description, required_skills, volunteers_needed, priority_level, status, created_by, created_at, closed_at`

const applicationColumns = `id, call_id, volunteer_id, status, notes, applied_at, reviewed_at, reviewed_by`

type CallRepository struct {
	db *sql.DB
}

func NewCallRepository(db *sql.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) CreateCall(ctx context.Context, call *domain.VolunteerCall) (*domain.VolunteerCall, error) {
	const q = `
INSERT INTO volunteer_calls (id, disaster_name, disaster_location, description, required_skills, volunteers_needed, priority_level, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + callColumns + `;`

	row := r.db.QueryRowContext(ctx, q,
		uuid.New().String(),
		call.DisasterName,
		call.DisasterLocation,
		call.Description,
		pq.Array(call.RequiredSkills),
		call.VolunteersNeeded,
		call.PriorityLevel,
		call.CreatedBy,
	)
	created, err := scanCall(row)
	if err != nil {
		return nil, fmt.Errorf("insert volunteer call: %w", err)
	}
	return created, nil
}

func (r *CallRepository) GetCall(ctx context.Context, id string) (*domain.VolunteerCall, error) {
	const q = `SELECT ` + callColumns + ` FROM volunteer_calls WHERE id = $1;`

	call, err := scanCall(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCallNotFound
		}
		return nil, fmt.Errorf("get volunteer call: %w", err)
	}
	return call, nil
}

// ListCalls returns calls newest first, optionally filtered by status.
func (r *CallRepository) ListCalls(ctx context.Context, status string) ([]domain.VolunteerCall, error) {
	const q = `
SELECT ` + callColumns + `
FROM volunteer_calls
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, fmt.Errorf("list volunteer calls: %w", err)
	}
	defer rows.Close()

	out := make([]domain.VolunteerCall, 0, 16)
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *call)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CloseCall is the explicit admin closure, active→closed only.
func (r *CallRepository) CloseCall(ctx context.Context, id string) (*domain.VolunteerCall, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin close call: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM volunteer_calls WHERE id = $1 FOR UPDATE;`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCallNotFound
		}
		return nil, fmt.Errorf("lock volunteer call: %w", err)
	}
	if current == domain.CallStatusClosed {
		return nil, domain.ErrCallClosed
	}

	const q = `
UPDATE volunteer_calls
SET status = 'closed', closed_at = now()
WHERE id = $1
RETURNING ` + callColumns + `;`

	call, err := scanCall(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("close volunteer call: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit close call: %w", err)
	}
	return call, nil
}

// Apply records a volunteer's application to an active call. The call row is
// locked so the application cannot slip past a concurrent closure, and the
// (call_id, volunteer_id) unique constraint decides duplicate races.
func (r *CallRepository) Apply(ctx context.Context, callID, volunteerID string) (*domain.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin apply: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM volunteer_calls WHERE id = $1 FOR UPDATE;`, callID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCallNotFound
		}
		return nil, fmt.Errorf("lock volunteer call: %w", err)
	}
	if status != domain.CallStatusActive {
		return nil, domain.ErrCallClosed
	}

	const q = `
INSERT INTO volunteer_call_applications (id, call_id, volunteer_id)
VALUES ($1, $2, $3)
RETURNING ` + applicationColumns + `;`

	app, err := scanApplication(tx.QueryRowContext(ctx, q, uuid.New().String(), callID, volunteerID))
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateApplication
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit apply: %w", err)
	}
	return app, nil
}

// Review moves an application along a legal edge, stamping reviewer and
// time. Moving to assigned locks the parent call in the same transaction
// and checks capacity before the application is touched: a closed call or
// a full assigned count fails the review, and an assignment that reaches
// capacity closes the call atomically. Concurrent reviewers serialize on
// the call row, so exactly one observes the threshold. Returns the updated
// application and the call's post-review state when it was touched.
func (r *CallRepository) Review(ctx context.Context, applicationID, reviewerID, newStatus string, notes *string) (*domain.Application, *domain.VolunteerCall, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin review: %w", err)
	}
	defer tx.Rollback()

	var callID, current string
	err = tx.QueryRowContext(ctx,
		`SELECT call_id, status FROM volunteer_call_applications WHERE id = $1 FOR UPDATE;`,
		applicationID).Scan(&callID, &current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrApplicationNotFound
		}
		return nil, nil, fmt.Errorf("lock application: %w", err)
	}

	if !domain.CanReview(current, newStatus) {
		return nil, nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, newStatus)
	}

	var assigned, needed int
	if newStatus == domain.ApplicationAssigned {
		var callStatus string
		err = tx.QueryRowContext(ctx,
			`SELECT status, volunteers_needed FROM volunteer_calls WHERE id = $1 FOR UPDATE;`,
			callID).Scan(&callStatus, &needed)
		if err != nil {
			return nil, nil, fmt.Errorf("lock call for capacity check: %w", err)
		}
		if callStatus != domain.CallStatusActive {
			return nil, nil, domain.ErrCallClosed
		}

		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM volunteer_call_applications WHERE call_id = $1 AND status = 'assigned';`,
			callID).Scan(&assigned)
		if err != nil {
			return nil, nil, fmt.Errorf("count assigned applications: %w", err)
		}
		if assigned >= needed {
			return nil, nil, domain.ErrCallFull
		}
	}

	const updateApp = `
UPDATE volunteer_call_applications
SET status = $2, notes = COALESCE($3, notes), reviewed_at = now(), reviewed_by = $4
WHERE id = $1
RETURNING ` + applicationColumns + `;`

	app, err := scanApplication(tx.QueryRowContext(ctx, updateApp, applicationID, newStatus, notes, reviewerID))
	if err != nil {
		return nil, nil, fmt.Errorf("update application: %w", err)
	}

	var call *domain.VolunteerCall
	if newStatus == domain.ApplicationAssigned {
		call, err = r.settleCallAfterAssignment(ctx, tx, callID, assigned+1 >= needed)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit review: %w", err)
	}
	return app, call, nil
}

func (r *CallRepository) settleCallAfterAssignment(ctx context.Context, tx *sql.Tx, callID string, full bool) (*domain.VolunteerCall, error) {
	if full {
		const closeCall = `
UPDATE volunteer_calls
SET status = 'closed', closed_at = now()
WHERE id = $1
RETURNING ` + callColumns + `;`

		call, err := scanCall(tx.QueryRowContext(ctx, closeCall, callID))
		if err != nil {
			return nil, fmt.Errorf("auto-close call: %w", err)
		}
		return call, nil
	}

	const getCall = `SELECT ` + callColumns + ` FROM volunteer_calls WHERE id = $1;`
	call, err := scanCall(tx.QueryRowContext(ctx, getCall, callID))
	if err != nil {
		return nil, fmt.Errorf("reload call: %w", err)
	}
	return call, nil
}

// ListApplicationsByCall is a pure read for the admin review screen.
func (r *CallRepository) ListApplicationsByCall(ctx context.Context, callID string) ([]domain.Application, error) {
	const q = `
SELECT ` + applicationColumns + `
FROM volunteer_call_applications
WHERE call_id = $1
ORDER BY applied_at ASC;`
	return r.listApplications(ctx, q, callID)
}

// ListApplicationsByVolunteer is a pure read for the volunteer's dashboard.
func (r *CallRepository) ListApplicationsByVolunteer(ctx context.Context, volunteerID string) ([]domain.Application, error) {
	const q = `
SELECT ` + applicationColumns + `
FROM volunteer_call_applications
WHERE volunteer_id = $1
ORDER BY applied_at DESC;`
	return r.listApplications(ctx, q, volunteerID)
}

func (r *CallRepository) listApplications(ctx context.Context, q, arg string) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Application, 0, 16)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCall(row rowScanner) (*domain.VolunteerCall, error) {
	var call domain.VolunteerCall
	var description, createdBy sql.NullString
	var closedAt sql.NullTime
	err := row.Scan(
		&call.ID,
		&call.DisasterName,
		&call.DisasterLocation,
		&description,
		pq.Array(&call.RequiredSkills),
		&call.VolunteersNeeded,
		&call.PriorityLevel,
		&call.Status,
		&createdBy,
		&call.CreatedAt,
		&closedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		call.Description = &description.String
	}
	if createdBy.Valid {
		call.CreatedBy = &createdBy.String
	}
	if closedAt.Valid {
		call.ClosedAt = &closedAt.Time
	}
	return &call, nil
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var app domain.Application
	var notes, reviewedBy sql.NullString
	var reviewedAt sql.NullTime
	err := row.Scan(
		&app.ID,
		&app.CallID,
		&app.VolunteerID,
		&app.Status,
		&notes,
		&app.AppliedAt,
		&reviewedAt,
		&reviewedBy,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		app.Notes = &notes.String
	}
	if reviewedAt.Valid {
		app.ReviewedAt = &reviewedAt.Time
	}
	if reviewedBy.Valid {
		app.ReviewedBy = &reviewedBy.String
	}
	return &app, nil
}

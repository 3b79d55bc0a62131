package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/domain"
)

const volunteerColumns = `id, user_id, skills, location, availability, is_active, created_at`

type VolunteerRepository struct {
	db *sql.DB
}

func NewVolunteerRepository(db *sql.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// Create registers a user as a volunteer. The unique constraint on user_id
// decides races between concurrent registrations.
func (r *VolunteerRepository) Create(ctx context.Context, userID string, skills []string, location, availability *string) (*domain.Volunteer, error) {
	const q = `
INSERT INTO volunteers (id, user_id, skills, location, availability)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + volunteerColumns + `;`

	row := r.db.QueryRowContext(ctx, q, uuid.New().String(), userID, pq.Array(skills), location, availability)
	v, err := scanVolunteer(row)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert volunteer: %w", err)
	}
	return v, nil
}

func (r *VolunteerRepository) GetByID(ctx context.Context, id string) (*domain.Volunteer, error) {
	const q = `SELECT ` + volunteerColumns + ` FROM volunteers WHERE id = $1;`
	return r.getOne(ctx, q, id)
}

func (r *VolunteerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Volunteer, error) {
	const q = `SELECT ` + volunteerColumns + ` FROM volunteers WHERE user_id = $1;`
	return r.getOne(ctx, q, userID)
}

func (r *VolunteerRepository) getOne(ctx context.Context, q, arg string) (*domain.Volunteer, error) {
	v, err := scanVolunteer(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get volunteer: %w", err)
	}
	return v, nil
}

func (r *VolunteerRepository) List(ctx context.Context) ([]domain.Volunteer, error) {
	const q = `SELECT ` + volunteerColumns + ` FROM volunteers ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Volunteer, 0, 16)
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update patches the caller's own volunteer record.
func (r *VolunteerRepository) Update(ctx context.Context, userID string, req *domain.UpdateVolunteerRequest) (*domain.Volunteer, error) {
	var skills any
	if req.Skills != nil {
		skills = pq.Array(req.Skills)
	}

	const q = `
UPDATE volunteers
SET skills = COALESCE($2, skills),
    location = COALESCE($3, location),
    availability = COALESCE($4, availability),
    is_active = COALESCE($5, is_active)
WHERE user_id = $1
RETURNING ` + volunteerColumns + `;`

	v, err := scanVolunteer(r.db.QueryRowContext(ctx, q, userID, skills, req.Location, req.Availability, req.IsActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update volunteer: %w", err)
	}
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVolunteer(row rowScanner) (*domain.Volunteer, error) {
	var v domain.Volunteer
	var location, availability sql.NullString
	err := row.Scan(
		&v.ID,
		&v.UserID,
		pq.Array(&v.Skills),
		&location,
		&availability,
		&v.IsActive,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if location.Valid {
		v.Location = &location.String
	}
	if availability.Valid {
		v.Availability = &availability.String
	}
	return &v, nil
}

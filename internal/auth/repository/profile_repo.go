package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Ensure creates a profile row on first sight of a user and returns it.
// Existing rows keep their role and contact; the name is refreshed only
// when the identity layer supplies a non-empty one.
func (r *ProfileRepository) Ensure(ctx context.Context, id, name string) (*domain.Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("profile id required")
	}
	if name == "" {
		name = id
	}

	const q = `
INSERT INTO profiles (id, name)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE
SET name = COALESCE(NULLIF(EXCLUDED.name, ''), profiles.name)
RETURNING id, name, contact, role, created_at;
`
	var p domain.Profile
	var contact sql.NullString
	err := r.db.QueryRowContext(ctx, q, id, name).
		Scan(&p.ID, &p.Name, &contact, &p.Role, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}
	if contact.Valid {
		p.Contact = &contact.String
	}
	return &p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const q = `
SELECT id, name, contact, role, created_at
FROM profiles
WHERE id = $1;
`
	var p domain.Profile
	var contact sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &contact, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if contact.Valid {
		p.Contact = &contact.String
	}
	return &p, nil
}

// Update changes name and contact only. The role column is deliberately
// out of reach of this method.
func (r *ProfileRepository) Update(ctx context.Context, id string, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	const q = `
UPDATE profiles
SET name = COALESCE($2, name), contact = COALESCE($3, contact)
WHERE id = $1
RETURNING id, name, contact, role, created_at;
`
	var p domain.Profile
	var contact sql.NullString
	err := r.db.QueryRowContext(ctx, q, id, req.Name, req.Contact).
		Scan(&p.ID, &p.Name, &contact, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if contact.Valid {
		p.Contact = &contact.String
	}
	return &p, nil
}

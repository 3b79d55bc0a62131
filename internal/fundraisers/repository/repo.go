package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/domain"
)

const fundraiserColumns = `id, title, description, goal_amount, raised_amount, status, start_date, end_date, created_by, created_at`

const donationColumns = `id, fundraiser_id, donor_user_id, donor_name, amount, is_anonymous, donation_date`

type FundraiserRepository struct {
	db *sql.DB
}

func NewFundraiserRepository(db *sql.DB) *FundraiserRepository {
	return &FundraiserRepository{db: db}
}

func (r *FundraiserRepository) Create(ctx context.Context, f *domain.Fundraiser) (*domain.Fundraiser, error) {
	const q = `
INSERT INTO fundraisers (id, title, description, goal_amount, start_date, end_date, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + fundraiserColumns + `;`

	created, err := scanFundraiser(r.db.QueryRowContext(ctx, q,
		uuid.New().String(), f.Title, f.Description, f.GoalAmount, f.StartDate, f.EndDate, f.CreatedBy))
	if err != nil {
		return nil, fmt.Errorf("insert fundraiser: %w", err)
	}
	return created, nil
}

func (r *FundraiserRepository) GetByID(ctx context.Context, id string) (*domain.Fundraiser, error) {
	const q = `SELECT ` + fundraiserColumns + ` FROM fundraisers WHERE id = $1;`

	f, err := scanFundraiser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get fundraiser: %w", err)
	}
	return f, nil
}

func (r *FundraiserRepository) List(ctx context.Context, status string) ([]domain.Fundraiser, error) {
	const q = `
SELECT ` + fundraiserColumns + `
FROM fundraisers
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, fmt.Errorf("list fundraisers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Fundraiser, 0, 16)
	for rows.Next() {
		f, err := scanFundraiser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close applies an explicit admin closure, active→completed|cancelled.
func (r *FundraiserRepository) Close(ctx context.Context, id, newStatus string) (*domain.Fundraiser, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin close fundraiser: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM fundraisers WHERE id = $1 FOR UPDATE;`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock fundraiser: %w", err)
	}
	if !domain.CanClose(current, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrNotActive, current, newStatus)
	}

	const q = `
UPDATE fundraisers
SET status = $2
WHERE id = $1
RETURNING ` + fundraiserColumns + `;`

	f, err := scanFundraiser(tx.QueryRowContext(ctx, q, id, newStatus))
	if err != nil {
		return nil, fmt.Errorf("close fundraiser: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit close fundraiser: %w", err)
	}
	return f, nil
}

// Donate records a donation and bumps raised_amount in the same
// transaction, with the fundraiser row locked so the stored total can
// never drift from the donation sum.
func (r *FundraiserRepository) Donate(ctx context.Context, d *domain.Donation) (*domain.Fundraiser, *domain.Donation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin donate: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM fundraisers WHERE id = $1 FOR UPDATE;`, d.FundraiserID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("lock fundraiser: %w", err)
	}
	if status != domain.StatusActive {
		return nil, nil, domain.ErrNotActive
	}

	const insert = `
INSERT INTO donations (id, fundraiser_id, donor_user_id, donor_name, amount, is_anonymous)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + donationColumns + `;`

	donation, err := scanDonation(tx.QueryRowContext(ctx, insert,
		uuid.New().String(), d.FundraiserID, d.DonorUserID, d.DonorName, d.Amount, d.IsAnonymous))
	if err != nil {
		return nil, nil, fmt.Errorf("insert donation: %w", err)
	}

	const bump = `
UPDATE fundraisers
SET raised_amount = raised_amount + $2
WHERE id = $1
RETURNING ` + fundraiserColumns + `;`

	f, err := scanFundraiser(tx.QueryRowContext(ctx, bump, d.FundraiserID, d.Amount))
	if err != nil {
		return nil, nil, fmt.Errorf("update raised amount: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit donate: %w", err)
	}
	return f, donation, nil
}

func (r *FundraiserRepository) ListDonationsByFundraiser(ctx context.Context, fundraiserID string) ([]domain.Donation, error) {
	const q = `
SELECT ` + donationColumns + `
FROM donations
WHERE fundraiser_id = $1
ORDER BY donation_date DESC;`
	return r.listDonations(ctx, q, fundraiserID)
}

func (r *FundraiserRepository) ListDonationsByDonor(ctx context.Context, donorUserID string) ([]domain.Donation, error) {
	const q = `
SELECT ` + donationColumns + `
FROM donations
WHERE donor_user_id = $1
ORDER BY donation_date DESC;`
	return r.listDonations(ctx, q, donorUserID)
}

func (r *FundraiserRepository) listDonations(ctx context.Context, q, arg string) ([]domain.Donation, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Donation, 0, 16)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFundraiser(row rowScanner) (*domain.Fundraiser, error) {
	var f domain.Fundraiser
	var startDate, endDate sql.NullTime
	var createdBy sql.NullString
	err := row.Scan(
		&f.ID,
		&f.Title,
		&f.Description,
		&f.GoalAmount,
		&f.RaisedAmount,
		&f.Status,
		&startDate,
		&endDate,
		&createdBy,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		f.StartDate = &startDate.Time
	}
	if endDate.Valid {
		f.EndDate = &endDate.Time
	}
	if createdBy.Valid {
		f.CreatedBy = &createdBy.String
	}
	return &f, nil
}

func scanDonation(row rowScanner) (*domain.Donation, error) {
	var d domain.Donation
	var donorUserID sql.NullString
	err := row.Scan(
		&d.ID,
		&d.FundraiserID,
		&donorUserID,
		&d.DonorName,
		&d.Amount,
		&d.IsAnonymous,
		&d.DonationDate,
	)
	if err != nil {
		return nil, err
	}
	if donorUserID.Valid {
		d.DonorUserID = &donorUserID.String
	}
	return &d, nil
}

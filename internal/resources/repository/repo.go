package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/domain"
)

const resourceColumns = `id, name, category, quantity, unit, created_at, updated_at`

const allocationColumns = `id, resource_id, request_id, quantity_allocated, allocated_by, allocation_date`

type ResourceRepository struct {
	db *sql.DB
}

func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, name, category string, quantity int, unit *string) (*domain.Resource, error) {
	const q = `
INSERT INTO resources (id, name, category, quantity, unit)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + resourceColumns + `;`

	res, err := scanResource(r.db.QueryRowContext(ctx, q, uuid.New().String(), name, category, quantity, unit))
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	return res, nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1;`

	res, err := scanResource(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return res, nil
}

func (r *ResourceRepository) List(ctx context.Context) ([]domain.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources ORDER BY name ASC;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Resource, 0, 16)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update patches resource metadata or restocks quantity.
func (r *ResourceRepository) Update(ctx context.Context, id string, req *domain.UpdateResourceRequest) (*domain.Resource, error) {
	const q = `
UPDATE resources
SET name = COALESCE($2, name),
    category = COALESCE($3, category),
    quantity = COALESCE($4, quantity),
    unit = COALESCE($5, unit),
    updated_at = now()
WHERE id = $1
RETURNING ` + resourceColumns + `;`

	res, err := scanResource(r.db.QueryRowContext(ctx, q, id, req.Name, req.Category, req.Quantity, req.Unit))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return res, nil
}

// Allocate draws quantity from a resource against a victim request. The
// resource row is locked for the check-and-decrement, so concurrent
// allocations serialize and can never take the balance below zero. The
// decrement and the allocation row commit together or not at all.
func (r *ResourceRepository) Allocate(ctx context.Context, resourceID, requestID string, quantity int, allocatedBy string) (*domain.Resource, *domain.Allocation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin allocate: %w", err)
	}
	defer tx.Rollback()

	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM resources WHERE id = $1 FOR UPDATE;`, resourceID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("lock resource: %w", err)
	}

	if quantity > available {
		return nil, nil, fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientQuantity, quantity, available)
	}

	var requestExists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM victim_requests WHERE id = $1);`, requestID).Scan(&requestExists)
	if err != nil {
		return nil, nil, fmt.Errorf("check request: %w", err)
	}
	if !requestExists {
		return nil, nil, domain.ErrRequestNotFound
	}

	const decrement = `
UPDATE resources
SET quantity = quantity - $2, updated_at = now()
WHERE id = $1
RETURNING ` + resourceColumns + `;`

	res, err := scanResource(tx.QueryRowContext(ctx, decrement, resourceID, quantity))
	if err != nil {
		return nil, nil, fmt.Errorf("decrement resource: %w", err)
	}

	const insert = `
INSERT INTO resource_allocations (id, resource_id, request_id, quantity_allocated, allocated_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + allocationColumns + `;`

	alloc, err := scanAllocation(tx.QueryRowContext(ctx, insert, uuid.New().String(), resourceID, requestID, quantity, allocatedBy))
	if err != nil {
		return nil, nil, fmt.Errorf("insert allocation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit allocate: %w", err)
	}
	return res, alloc, nil
}

func (r *ResourceRepository) ListAllocationsByResource(ctx context.Context, resourceID string) ([]domain.Allocation, error) {
	const q = `
SELECT ` + allocationColumns + `
FROM resource_allocations
WHERE resource_id = $1
ORDER BY allocation_date DESC;`
	return r.listAllocations(ctx, q, resourceID)
}

func (r *ResourceRepository) ListAllocationsByRequest(ctx context.Context, requestID string) ([]domain.Allocation, error) {
	const q = `
SELECT ` + allocationColumns + `
FROM resource_allocations
WHERE request_id = $1
ORDER BY allocation_date DESC;`
	return r.listAllocations(ctx, q, requestID)
}

func (r *ResourceRepository) listAllocations(ctx context.Context, q, arg string) ([]domain.Allocation, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Allocation, 0, 16)
	for rows.Next() {
		alloc, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var res domain.Resource
	var unit sql.NullString
	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Category,
		&res.Quantity,
		&unit,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if unit.Valid {
		res.Unit = &unit.String
	}
	return &res, nil
}

func scanAllocation(row rowScanner) (*domain.Allocation, error) {
	var alloc domain.Allocation
	var allocatedBy sql.NullString
	err := row.Scan(
		&alloc.ID,
		&alloc.ResourceID,
		&alloc.RequestID,
		&alloc.QuantityAllocated,
		&allocatedBy,
		&alloc.AllocationDate,
	)
	if err != nil {
		return nil, err
	}
	if allocatedBy.Valid {
		alloc.AllocatedBy = &allocatedBy.String
	}
	return &alloc, nil
}

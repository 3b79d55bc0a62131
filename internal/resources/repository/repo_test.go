package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/repository"
)

var (
	resourceCols   = []string{"id", "name", "category", "quantity", "unit", "created_at", "updated_at"}
	allocationCols = []string{"id", "resource_id", "request_id", "quantity_allocated", "allocated_by", "allocation_date"}
)

func setupResourceRepo(t *testing.T) (*repository.ResourceRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewResourceRepository(db), mock
}

func resourceRow(id string, quantity int) *sqlmock.Rows {
	return sqlmock.NewRows(resourceCols).
		AddRow(id, "Bottled Water", "supplies", quantity, "crate", time.Now(), time.Now())
}

func TestResourceRepository_Allocate(t *testing.T) {
	t.Run("decrements stock and records the allocation", func(t *testing.T) {
		repo, mock := setupResourceRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT quantity FROM resources WHERE id = \$1 FOR UPDATE`).
			WithArgs("res-1").
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(10))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`UPDATE resources`).
			WithArgs("res-1", 5).
			WillReturnRows(resourceRow("res-1", 5))
		mock.ExpectQuery(`INSERT INTO resource_allocations`).
			WithArgs(sqlmock.AnyArg(), "res-1", "req-1", 5, "admin-1").
			WillReturnRows(sqlmock.NewRows(allocationCols).
				AddRow("alloc-1", "res-1", "req-1", 5, "admin-1", time.Now()))
		mock.ExpectCommit()

		res, alloc, err := repo.Allocate(context.Background(), "res-1", "req-1", 5, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, 5, res.Quantity)
		assert.Equal(t, 5, alloc.QuantityAllocated)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses to overdraw the balance", func(t *testing.T) {
		repo, mock := setupResourceRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT quantity FROM resources WHERE id = \$1 FOR UPDATE`).
			WithArgs("res-1").
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(5))
		mock.ExpectRollback()

		_, _, err := repo.Allocate(context.Background(), "res-1", "req-1", 6, "admin-1")
		assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an unknown request", func(t *testing.T) {
		repo, mock := setupResourceRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT quantity FROM resources WHERE id = \$1 FOR UPDATE`).
			WithArgs("res-1").
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(10))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		_, _, err := repo.Allocate(context.Background(), "res-1", "missing", 5, "admin-1")
		assert.ErrorIs(t, err, domain.ErrRequestNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing resource", func(t *testing.T) {
		repo, mock := setupResourceRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT quantity FROM resources WHERE id = \$1 FOR UPDATE`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, _, err := repo.Allocate(context.Background(), "missing", "req-1", 1, "admin-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("allocating the full balance drains it to zero", func(t *testing.T) {
		repo, mock := setupResourceRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT quantity FROM resources WHERE id = \$1 FOR UPDATE`).
			WithArgs("res-1").
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(5))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`UPDATE resources`).
			WithArgs("res-1", 5).
			WillReturnRows(resourceRow("res-1", 0))
		mock.ExpectQuery(`INSERT INTO resource_allocations`).
			WithArgs(sqlmock.AnyArg(), "res-1", "req-1", 5, "admin-1").
			WillReturnRows(sqlmock.NewRows(allocationCols).
				AddRow("alloc-2", "res-1", "req-1", 5, "admin-1", time.Now()))
		mock.ExpectCommit()

		res, _, err := repo.Allocate(context.Background(), "res-1", "req-1", 5, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, 0, res.Quantity)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_Update(t *testing.T) {
	repo, mock := setupResourceRepo(t)

	quantity := 40
	mock.ExpectQuery(`UPDATE resources`).
		WithArgs("res-1", nil, nil, quantity, nil).
		WillReturnRows(resourceRow("res-1", 40))

	res, err := repo.Update(context.Background(), "res-1", &domain.UpdateResourceRequest{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 40, res.Quantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

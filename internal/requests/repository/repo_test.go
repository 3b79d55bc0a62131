package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/repository"
)

var requestCols = []string{
	"id", "user_id", "location", "description", "urgent_needs",
	"status", "assigned_volunteer_id", "request_date", "updated_at",
}

func setupRequestRepo(t *testing.T) (*repository.RequestRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return repository.NewRequestRepository(db), mock, db
}

func requestRow(id, status string) *sqlmock.Rows {
	return sqlmock.NewRows(requestCols).
		AddRow(id, "user-1", "Sector 7", "Family of four trapped by flood water", nil,
			status, nil, time.Now(), time.Now())
}

func TestRequestRepository_Create(t *testing.T) {
	repo, mock, db := setupRequestRepo(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO victim_requests`).
		WithArgs(sqlmock.AnyArg(), "user-1", "Sector 7", "Family of four trapped by flood water", nil).
		WillReturnRows(requestRow("req-1", domain.StatusPending))

	req, err := repo.Create(context.Background(), "user-1", "Sector 7", "Family of four trapped by flood water", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, req.Status)
	assert.Equal(t, "user-1", req.UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, db := setupRequestRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM victim_requests WHERE id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_Transition(t *testing.T) {
	t.Run("approves a pending request", func(t *testing.T) {
		repo, mock, db := setupRequestRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM victim_requests WHERE id = \$1 FOR UPDATE`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.StatusPending))
		mock.ExpectQuery(`UPDATE victim_requests`).
			WithArgs("req-1", domain.StatusApproved, nil).
			WillReturnRows(requestRow("req-1", domain.StatusApproved))
		mock.ExpectCommit()

		req, err := repo.Transition(context.Background(), "req-1", domain.StatusApproved, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, req.Status)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects pending to completed", func(t *testing.T) {
		repo, mock, db := setupRequestRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM victim_requests WHERE id = \$1 FOR UPDATE`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.StatusPending))
		mock.ExpectRollback()

		_, err := repo.Transition(context.Background(), "req-1", domain.StatusCompleted, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in_progress requires a volunteer", func(t *testing.T) {
		repo, mock, db := setupRequestRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM victim_requests WHERE id = \$1 FOR UPDATE`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.StatusApproved))
		mock.ExpectRollback()

		_, err := repo.Transition(context.Background(), "req-1", domain.StatusInProgress, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in_progress rejects an inactive volunteer", func(t *testing.T) {
		repo, mock, db := setupRequestRepo(t)
		defer db.Close()

		volID := "vol-1"
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM victim_requests WHERE id = \$1 FOR UPDATE`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.StatusApproved))
		mock.ExpectQuery(`SELECT is_active FROM volunteers`).
			WithArgs(volID).
			WillReturnRows(sqlmock.NewRows([]string{"is_active"}).AddRow(false))
		mock.ExpectRollback()

		_, err := repo.Transition(context.Background(), "req-1", domain.StatusInProgress, &volID)
		assert.ErrorIs(t, err, domain.ErrVolunteerInactive)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("assigns an active volunteer", func(t *testing.T) {
		repo, mock, db := setupRequestRepo(t)
		defer db.Close()

		volID := "vol-1"
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM victim_requests WHERE id = \$1 FOR UPDATE`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.StatusApproved))
		mock.ExpectQuery(`SELECT is_active FROM volunteers`).
			WithArgs(volID).
			WillReturnRows(sqlmock.NewRows([]string{"is_active"}).AddRow(true))
		mock.ExpectQuery(`UPDATE victim_requests`).
			WithArgs("req-1", domain.StatusInProgress, volID).
			WillReturnRows(sqlmock.NewRows(requestCols).
				AddRow("req-1", "user-1", "Sector 7", "Family of four trapped by flood water", nil,
					domain.StatusInProgress, volID, time.Now(), time.Now()))
		mock.ExpectCommit()

		req, err := repo.Transition(context.Background(), "req-1", domain.StatusInProgress, &volID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, req.Status)
		require.NotNil(t, req.AssignedVolunteerID)
		assert.Equal(t, volID, *req.AssignedVolunteerID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejecting an in-progress request clears the volunteer", func(t *testing.T) {
		repo, mock, db := setupRequestRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM victim_requests WHERE id = \$1 FOR UPDATE`).
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.StatusInProgress))
		mock.ExpectQuery(`UPDATE victim_requests`).
			WithArgs("req-1", domain.StatusRejected, nil).
			WillReturnRows(requestRow("req-1", domain.StatusRejected))
		mock.ExpectCommit()

		req, err := repo.Transition(context.Background(), "req-1", domain.StatusRejected, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, req.Status)
		assert.Nil(t, req.AssignedVolunteerID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing request", func(t *testing.T) {
		repo, mock, db := setupRequestRepo(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM victim_requests WHERE id = \$1 FOR UPDATE`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.Transition(context.Background(), "missing", domain.StatusApproved, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

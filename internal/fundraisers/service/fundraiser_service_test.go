package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/repository"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/service"
)

func newFundraiserService(t *testing.T) (*service.FundraiserService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return service.NewFundraiserService(repository.NewFundraiserRepository(db)), mock
}

func TestFundraiserService_Donate(t *testing.T) {
	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, mock := newFundraiserService(t)

		_, _, err := svc.Donate(context.Background(), "fund-1", "user-1", "Jordan", 0, false)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = svc.Donate(context.Background(), "fund-1", "user-1", "Jordan", -5, false)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires a donor name for named donations", func(t *testing.T) {
		svc, mock := newFundraiserService(t)

		_, _, err := svc.Donate(context.Background(), "fund-1", "user-1", "   ", 25, false)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("anonymous donations overwrite the donor name", func(t *testing.T) {
		svc, mock := newFundraiserService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM fundraisers WHERE id = \$1 FOR UPDATE`).
			WithArgs("fund-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.StatusActive))
		mock.ExpectQuery(`INSERT INTO donations`).
			WithArgs(sqlmock.AnyArg(), "fund-1", "user-1", domain.AnonymousDonorName, 25.0, true).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "fundraiser_id", "donor_user_id", "donor_name", "amount", "is_anonymous", "donation_date",
			}).AddRow("don-1", "fund-1", "user-1", domain.AnonymousDonorName, 25.0, true, time.Now()))
		mock.ExpectQuery(`UPDATE fundraisers`).
			WithArgs("fund-1", 25.0).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "title", "description", "goal_amount", "raised_amount",
				"status", "start_date", "end_date", "created_by", "created_at",
			}).AddRow("fund-1", "Rebuild the Clinic", "Replacing lost equipment", 10000.0, 25.0,
				domain.StatusActive, nil, nil, nil, time.Now()))
		mock.ExpectCommit()

		_, d, err := svc.Donate(context.Background(), "fund-1", "user-1", "Jordan", 25, true)
		require.NoError(t, err)
		assert.Equal(t, domain.AnonymousDonorName, d.DonorName)
		assert.True(t, d.IsAnonymous)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFundraiserService_Close_Validation(t *testing.T) {
	svc, mock := newFundraiserService(t)

	_, err := svc.Close(context.Background(), authdomain.RoleUser, "fund-1", domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	_, err = svc.Close(context.Background(), authdomain.RoleAdmin, "fund-1", "paused")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFundraiserService_Create_Validation(t *testing.T) {
	svc, mock := newFundraiserService(t)

	_, err := svc.Create(context.Background(), "user-1", authdomain.RoleUser, &service.CreateFundraiserRequest{
		Title: "Anything", GoalAmount: 100,
	})
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	_, err = svc.Create(context.Background(), "admin-1", authdomain.RoleAdmin, &service.CreateFundraiserRequest{
		Title: "", GoalAmount: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "admin-1", authdomain.RoleAdmin, &service.CreateFundraiserRequest{
		Title: "Rebuild the Clinic", GoalAmount: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}

package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/repository"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/service"
	volunteerdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/domain"
	volunteerrepo "github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/repository"
)

func newCallService(t *testing.T) (*service.CallService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return service.NewCallService(
		repository.NewCallRepository(db),
		volunteerrepo.NewVolunteerRepository(db),
	), mock
}

func TestCallService_CreateCall_Validation(t *testing.T) {
	svc, mock := newCallService(t)

	t.Run("admin only", func(t *testing.T) {
		_, err := svc.CreateCall(context.Background(), "user-1", authdomain.RoleUser, &service.CreateCallRequest{
			DisasterName: "Flood Relief", DisasterLocation: "Riverside", VolunteersNeeded: 3,
		})
		assert.ErrorIs(t, err, domain.ErrAdminOnly)
	})

	t.Run("name and location required", func(t *testing.T) {
		_, err := svc.CreateCall(context.Background(), "admin-1", authdomain.RoleAdmin, &service.CreateCallRequest{
			DisasterName: " ", DisasterLocation: "Riverside", VolunteersNeeded: 3,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		_, err := svc.CreateCall(context.Background(), "admin-1", authdomain.RoleAdmin, &service.CreateCallRequest{
			DisasterName: "Flood Relief", DisasterLocation: "Riverside", VolunteersNeeded: 0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := svc.CreateCall(context.Background(), "admin-1", authdomain.RoleAdmin, &service.CreateCallRequest{
			DisasterName: "Flood Relief", DisasterLocation: "Riverside", VolunteersNeeded: 3,
			PriorityLevel: "urgent",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCallService_Apply_ResolvesVolunteer(t *testing.T) {
	t.Run("unregistered user cannot apply", func(t *testing.T) {
		svc, mock := newCallService(t)

		mock.ExpectQuery(`SELECT .+ FROM volunteers WHERE user_id`).
			WithArgs("user-1").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.Apply(context.Background(), "user-1", "call-1")
		assert.ErrorIs(t, err, volunteerdomain.ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies with the volunteer id, not the user id", func(t *testing.T) {
		svc, mock := newCallService(t)

		mock.ExpectQuery(`SELECT .+ FROM volunteers WHERE user_id`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "skills", "location", "availability", "is_active", "created_at",
			}).AddRow("vol-1", "user-1", "{first_aid}", nil, nil, true, time.Now()))
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM volunteer_calls WHERE id = \$1 FOR UPDATE`).
			WithArgs("call-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.CallStatusActive))
		mock.ExpectQuery(`INSERT INTO volunteer_call_applications`).
			WithArgs(sqlmock.AnyArg(), "call-1", "vol-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "call_id", "volunteer_id", "status", "notes", "applied_at", "reviewed_at", "reviewed_by",
			}).AddRow("app-1", "call-1", "vol-1", domain.ApplicationPending, nil, time.Now(), nil, nil))
		mock.ExpectCommit()

		app, err := svc.Apply(context.Background(), "user-1", "call-1")
		require.NoError(t, err)
		assert.Equal(t, "vol-1", app.VolunteerID)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCallService_Review_Validation(t *testing.T) {
	svc, mock := newCallService(t)

	_, _, err := svc.Review(context.Background(), "user-1", authdomain.RoleUser, "app-1", domain.ApplicationAccepted, nil)
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	_, _, err = svc.Review(context.Background(), "admin-1", authdomain.RoleAdmin, "app-1", "pending", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}

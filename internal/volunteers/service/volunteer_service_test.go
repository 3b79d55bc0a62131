package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/repository"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/service"
)

func newVolunteerService(t *testing.T) (*service.VolunteerService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return service.NewVolunteerService(repository.NewVolunteerRepository(db)), mock
}

func TestVolunteerService_Register(t *testing.T) {
	t.Run("rejects empty skill sets", func(t *testing.T) {
		svc, mock := newVolunteerService(t)

		_, err := svc.Register(context.Background(), "user-1", nil, nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Register(context.Background(), "user-1", []string{"  ", ""}, nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("trims and dedupes skills before the insert", func(t *testing.T) {
		svc, mock := newVolunteerService(t)

		mock.ExpectQuery(`INSERT INTO volunteers`).
			WithArgs(sqlmock.AnyArg(), "user-1", sqlmock.AnyArg(), nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "skills", "location", "availability", "is_active", "created_at",
			}).AddRow("vol-1", "user-1", "{first_aid,logistics}", nil, nil, true, time.Now()))

		v, err := svc.Register(context.Background(), "user-1",
			[]string{" first_aid ", "logistics", "first_aid", ""}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"first_aid", "logistics"}, v.Skills)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVolunteerService_UpdateMine(t *testing.T) {
	svc, mock := newVolunteerService(t)

	_, err := svc.UpdateMine(context.Background(), "user-1", &domain.UpdateVolunteerRequest{
		Skills: []string{" ", ""},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerService_ListAll_AdminOnly(t *testing.T) {
	svc, mock := newVolunteerService(t)

	_, err := svc.ListAll(context.Background(), authdomain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	require.NoError(t, mock.ExpectationsWereMet())
}

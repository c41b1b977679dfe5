package userrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loginapp/internal/authserver/adapters/postgres"
	"loginapp/internal/authserver/domain/entities"
	"loginapp/pkg/logger"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	ctx = logger.NewContext(ctx, testLogger)

	birthDate := time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC)
	newUser := &entities.User{
		Phone:        "+15551234567",
		FullName:     "Test User",
		Email:        "test@example.com",
		BirthDate:    &birthDate,
		PasswordHash: "hashed_password",
	}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		createdAt := time.Now().UTC().Truncate(time.Microsecond)
		rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), createdAt)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(newUser.Phone, newUser.PasswordHash, newUser.FullName, newUser.Email, newUser.BirthDate).
			WillReturnRows(rows)

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, newUser)

		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		assert.Equal(t, newUser.Phone, created.Phone)
		assert.Equal(t, createdAt, created.CreatedAt)

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})

	t.Run("Ошибка базы данных при создании", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		dbError := errors.New("unique constraint violation")
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(newUser.Phone, newUser.PasswordHash, newUser.FullName, newUser.Email, newUser.BirthDate).
			WillReturnError(dbError)

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, newUser)

		assert.Nil(t, created)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error inserting user")

		err = mock.ExpectationsWereMet()
		require.NoError(t, err)
	})
}

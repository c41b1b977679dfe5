package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adapter "loginapp/internal/authserver/adapters/services"
	"loginapp/internal/authserver/domain/services"
)

func TestServiceBcrypt_HashAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := adapter.NewBcrypt(bcrypt.MinCost)

	t.Run("Хэш проверяется исходным паролем", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "secret")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "secret", hash)

		valid, err := svc.Verify(ctx, "secret", hash)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("Неверный пароль не проходит проверку без ошибки", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "secret")
		require.NoError(t, err)

		valid, err := svc.Verify(ctx, "wrong", hash)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("Пустой пароль отклоняется", func(t *testing.T) {
		_, err := svc.Hash(ctx, "")
		assert.ErrorIs(t, err, services.ErrInvalidPassword)

		valid, err := svc.Verify(ctx, "", "some-hash")
		assert.False(t, valid)
		assert.ErrorIs(t, err, services.ErrInvalidPassword)
	})

	t.Run("Поврежденный хэш возвращает ошибку", func(t *testing.T) {
		valid, err := svc.Verify(ctx, "secret", "not-a-bcrypt-hash")
		assert.False(t, valid)
		assert.Error(t, err)
	})
}

func TestNewBcrypt_InvalidCost(t *testing.T) {
	ctx := context.Background()

	// Стоимость ниже минимальной заменяется стоимостью по умолчанию.
	svc := adapter.NewBcrypt(-1)

	hash, err := svc.Hash(ctx, "secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

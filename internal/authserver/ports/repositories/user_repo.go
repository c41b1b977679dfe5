// Package repositories определяет контракты хранилищ сервиса авторизации.
package repositories

import (
	"context"

	"loginapp/internal/authserver/domain/entities"
)

// UserRepository определяет операции хранилища пользователей.
type UserRepository interface {
	// Create сохраняет нового пользователя и возвращает его с присвоенным ID.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	// FindByID находит пользователя по ID.
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	// FindByPhone находит пользователя по номеру телефона.
	FindByPhone(ctx context.Context, phone string) (*entities.User, error)
	// FindByEmail находит пользователя по email.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}

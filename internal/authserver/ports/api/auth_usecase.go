// Package api определяет контракты прикладного слоя сервиса авторизации.
package api

import (
	"context"
	"time"

	"loginapp/internal/authserver/domain/entities"
	"loginapp/internal/authserver/domain/services"
)

// RegisterInput содержит данные для регистрации пользователя.
// Все поля обязательны; их наличие проверяет вызывающая сторона.
type RegisterInput struct {
	Phone     string
	Password  string
	FullName  string
	Email     string
	BirthDate time.Time
}

// AuthUseCase определяет операции сервиса авторизации.
type AuthUseCase interface {
	// CheckUser сообщает, зарегистрирован ли номер телефона.
	CheckUser(ctx context.Context, phone string) (bool, error)
	// Login аутентифицирует пользователя по телефону и паролю.
	Login(ctx context.Context, phone, password string) (*services.AuthResult, error)
	// Register создает нового пользователя.
	Register(ctx context.Context, input *RegisterInput) (*services.AuthResult, error)
	// Profile возвращает пользователя по токену сессии.
	Profile(ctx context.Context, token string) (*entities.User, error)
}

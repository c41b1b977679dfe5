// Package api определяет контракт клиента сервиса авторизации.
package api

import (
	"context"

	"loginapp/internal/loginapp/app/dto"
)

// Client определяет операции клиента сервиса авторизации.
type Client interface {
	// CheckUser проверяет, зарегистрирован ли номер телефона.
	CheckUser(ctx context.Context, phone string) (*dto.CheckUserResponse, error)
	// Login выполняет вход по номеру телефона и паролю.
	Login(ctx context.Context, phone, password string) (*dto.AuthResponse, error)
	// Register регистрирует нового пользователя.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
}

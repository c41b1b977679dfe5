// Package services содержит доменные типы и ошибки сервисов авторизации.
package services

import (
	"errors"

	"loginapp/internal/authserver/domain/entities"
)

// Ошибки доменных сервисов.
var (
	ErrInvalidCredentials    = errors.New("invalid phone or password")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrHashingFailed         = errors.New("password hashing failed")
	ErrTokenGenerationFailed = errors.New("token generation failed")
	ErrInvalidToken          = errors.New("invalid token")
)

// AuthResult содержит результат успешного входа или регистрации:
// выданный токен и пользователя, которому он принадлежит.
type AuthResult struct {
	Token string
	User  *entities.User
}

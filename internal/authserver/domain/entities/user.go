// Package entities содержит доменные сущности сервиса авторизации.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidPhone           = errors.New("invalid phone number")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// User представляет основную сущность домена пользователя.
// FullName и Email могут быть пустыми, BirthDate - nil.
type User struct {
	ID           int64
	Phone        string
	FullName     string
	Email        string
	BirthDate    *time.Time
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
}

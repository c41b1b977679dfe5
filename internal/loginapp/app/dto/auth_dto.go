// Package dto содержит объекты передачи данных для API авторизации.
package dto

import (
	"loginapp/internal/loginapp/domain/entities"
)

// CheckUserRequest содержит данные запроса проверки существования пользователя.
type CheckUserRequest struct {
	Phone string `json:"phone"`
}

// CheckUserResponse содержит результат проверки существования пользователя.
type CheckUserResponse struct {
	Exists           bool `json:"exists"`
	RequiresPassword bool `json:"requiresPassword"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterRequest содержит данные для регистрации пользователя.
// Дата рождения сериализуется строкой в формате YYYY-MM-DD.
type RegisterRequest struct {
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

// AuthResponse содержит результат успешного входа или регистрации.
type AuthResponse struct {
	Token string        `json:"token"`
	User  entities.User `json:"user"`
}

// ErrorResponse содержит тело ошибки сервиса авторизации.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Package services определяет контракты вспомогательных сервисов авторизации.
package services

import "context"

// PasswordService определяет операции хэширования и проверки паролей.
type PasswordService interface {
	// Hash возвращает хэш пароля.
	Hash(ctx context.Context, password string) (string, error)
	// Verify проверяет соответствие пароля хэшу.
	Verify(ctx context.Context, password, hash string) (bool, error)
}

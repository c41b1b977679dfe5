package services

import "context"

// TokenService определяет операции выпуска и проверки токенов сессии.
type TokenService interface {
	// Generate выпускает токен для пользователя.
	Generate(ctx context.Context, userID int64) (string, error)
	// Verify проверяет токен и возвращает ID пользователя.
	Verify(ctx context.Context, token string) (int64, error)
}

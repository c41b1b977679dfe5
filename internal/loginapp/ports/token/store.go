// Package token определяет контракт хранилища токена сессии.
package token

import "context"

// Store определяет операции хранилища токена сессии.
// Реализация замещает системное хранилище учетных данных.
type Store interface {
	// Save сохраняет токен, перезаписывая предыдущий.
	Save(ctx context.Context, token string) error
	// Load возвращает сохраненный токен или пустую строку.
	Load(ctx context.Context) (string, error)
	// Clear удаляет сохраненный токен.
	Clear(ctx context.Context) error
}

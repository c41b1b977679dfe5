// Package cache определяет контракт кэша сервиса авторизации.
package cache

import (
	"context"
	"time"
)

// Cache определяет операции кэша.
type Cache interface {
	// Get возвращает значение по ключу; пустая строка - промах.
	Get(ctx context.Context, key string) (string, error)
	// Set устанавливает значение для ключа с временем жизни.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete удаляет значение по ключу.
	Delete(ctx context.Context, key string) error
	// Close закрывает соединение с кэшем.
	Close() error
}

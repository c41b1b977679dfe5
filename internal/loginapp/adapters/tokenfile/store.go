// Package tokenfile предоставляет файловую реализацию хранилища токена.
package tokenfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"loginapp/internal/loginapp/config"
	tokenPort "loginapp/internal/loginapp/ports/token"
	"loginapp/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodSave  = "Save"
	LogMethodLoad  = "Load"
	LogMethodClear = "Clear"

	ErrorFailedToSave  = "failed to save token"
	ErrorFailedToLoad  = "failed to load token"
	ErrorFailedToClear = "failed to clear token"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Store реализует интерфейс token.Store поверх файла на диске.
type Store struct {
	path string
}

// NewStore создает новый экземпляр файлового хранилища токена.
func NewStore(cfg *config.TokenConfig) tokenPort.Store {
	return &Store{path: cfg.Path}
}

// Save сохраняет токен, перезаписывая предыдущий.
func (s *Store) Save(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSave))

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}

	if err := os.WriteFile(s.path, []byte(token), filePerm); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}

	return nil
}

// Load возвращает сохраненный токен или пустую строку, если токена нет.
func (s *Store) Load(ctx context.Context) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLoad))

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		log.Error(ctx, ErrorFailedToLoad, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToLoad, err)
	}

	return string(data), nil
}

// Clear удаляет сохраненный токен. Отсутствие токена не является ошибкой.
func (s *Store) Clear(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodClear))

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error(ctx, ErrorFailedToClear, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToClear, err)
	}

	return nil
}

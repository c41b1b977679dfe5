package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Ошибки работы с logger.
var (
	ErrLoggerNotFound   = fmt.Errorf("logger not found in context")
	ErrInitGlobalLogger = fmt.Errorf("failed to initialize global logger")
)

var (
	globalMu     sync.RWMutex
	globalLogger *Logger

	// fallback используется, когда глобальный logger еще не установлен.
	fallback *Logger
)

// ctxKey - неэкспортируемый тип ключа контекста.
type ctxKey struct{}

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	base, _ := cfg.Build()
	fallback = &Logger{l: base.With(zap.String("logger", "fallback"))}
}

// NewContext сохраняет logger в контексте.
func NewContext(ctx context.Context, log *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext возвращает logger из контекста либо ошибку, если его там нет.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context: %w", ErrLoggerNotFound)
	}
	log, ok := ctx.Value(ctxKey{}).(*Logger)
	if !ok {
		return nil, fmt.Errorf("context value: %w", ErrLoggerNotFound)
	}
	return log, nil
}

// InitGlobalLogger инициализирует глобальный logger с уровнем по умолчанию.
func InitGlobalLogger(env Environment) error {
	return InitGlobalLoggerWithLevel(env, "")
}

// InitGlobalLoggerWithLevel инициализирует глобальный logger с указанным уровнем.
// Повторный вызов при уже установленном logger ничего не делает.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger != nil {
		return nil
	}

	log, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	globalLogger = log
	return nil
}

// SetGlobalLogger заменяет глобальный logger.
func SetGlobalLogger(log *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = log
}

// Log возвращает logger из контекста, иначе глобальный, иначе fallback.
func Log(ctx context.Context) *Logger {
	if log, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return log
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger != nil {
		return globalLogger
	}
	return fallback
}

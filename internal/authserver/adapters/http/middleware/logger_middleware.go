// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"loginapp/pkg/logger"
)

// Константы для логирования запросов.
const (
	HeaderRequestID = "X-Request-Id"

	LogRequestStarted  = "request started"
	LogRequestFinished = "request finished"
	LogRequestFailed   = "request failed"
)

// NewLoggerMiddleware логирует каждый HTTP запрос с его длительностью и статусом.
// Идентификатор запроса берется из заголовка X-Request-Id либо генерируется.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx.Set(HeaderRequestID, requestID)

		log := logger.Log(requestCtx).With(
			zap.String(logger.RequestID, requestID),
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.String("ip", ctx.IP()),
		)

		start := time.Now()
		log.Info(requestCtx, LogRequestStarted)

		err := ctx.Next()

		fields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, LogRequestFailed, append(fields, zap.Error(err))...)
			return fmt.Errorf("request processing: %w", err)
		}

		log.Info(requestCtx, LogRequestFinished, fields...)
		return nil
	}
}

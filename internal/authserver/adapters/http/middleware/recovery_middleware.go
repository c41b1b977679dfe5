package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"loginapp/pkg/logger"
)

// Константы для обработки паники.
const (
	LogPanicRecovered = "panic recovered"
	LogPanicResponse  = "failed to write response after panic"

	MsgInternalServerError = "Internal Server Error"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает 500,
// не роняя процесс.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger.Log(requestCtx).Error(requestCtx, LogPanicRecovered,
				zap.String("panic", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)

			err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": MsgInternalServerError,
			})
			if err != nil {
				logger.Log(requestCtx).Error(requestCtx, LogPanicResponse, zap.Error(err))
			}
		}()

		return ctx.Next()
	}
}

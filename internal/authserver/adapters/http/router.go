// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"loginapp/internal/authserver/adapters/http/auth"
	"loginapp/internal/authserver/adapters/http/middleware"
	"loginapp/internal/authserver/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, useCase api.AuthUseCase) {
	authHandler := auth.NewHandler(useCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiRoutes := app.Group("/api")
	apiRoutes.Post("/check-user", authHandler.CheckUser)
	apiRoutes.Post("/login", authHandler.Login)
	apiRoutes.Post("/register", authHandler.Register)
	apiRoutes.Get("/profile", authHandler.Profile)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"zupsms_backend/internals/middlewares/logger"
)

// SetupMiddlewares branche les middlewares globaux (ordre important:
// recovery d'abord, limiter en dernier).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	database "zupsms_backend/internals/databases"
)

var startedAt = time.Now()

// BaseRoutes: racine + health check (uptime et ping DB)
func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "ZUPsms Backend",
			"status":  "running",
			"version": "1.0.0",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if err := database.Ping(); err != nil {
			dbStatus = "down"
		}
		status := fiber.StatusOK
		if dbStatus != "up" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   "ok",
			"database": dbStatus,
			"uptime":   time.Since(startedAt).Round(time.Second).String(),
		})
	})
}

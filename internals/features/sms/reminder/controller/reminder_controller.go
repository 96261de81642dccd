// file: internals/features/sms/reminder/controller/reminder_controller.go
package controller

import (
	"crypto/subtle"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zupsms_backend/internals/configs"
	"zupsms_backend/internals/constants"
	reminderService "zupsms_backend/internals/features/sms/reminder/service"
)

type ReminderController struct {
	Service *reminderService.ReminderService
}

func NewReminderController(db *gorm.DB, gw reminderService.SmsGateway) *ReminderController {
	return &ReminderController{Service: reminderService.NewReminderService(db, gw)}
}

// SendReminders: GET /api/cron/send-reminders. déclenché par le cron
// externe (Railway/Vercel cron). Secret partagé en Bearer, sinon 401 et
// aucun travail.
func (ctl *ReminderController) SendReminders(c *fiber.Ctx) error {
	if !authorizedCron(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	log.Println("🕐 Running SMS reminder cron job...")

	summary, err := ctl.Service.Run(constants.NowParis())
	if err != nil {
		if errors.Is(err, reminderService.ErrSettingsNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Settings not found"})
		}
		log.Println("[ERROR] reminder cron:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(summary)
}

func authorizedCron(c *fiber.Ctx) bool {
	secret := configs.CronSecret
	if secret == "" {
		return false
	}
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if !strings.HasPrefix(authHeader, "Bearer ") || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

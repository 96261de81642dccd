// file: internals/features/sms/route/sms_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	smsCtrl "zupsms_backend/internals/features/sms/controller"
	smsLogCtrl "zupsms_backend/internals/features/sms/logs/controller"
	reminderCtrl "zupsms_backend/internals/features/sms/reminder/controller"
	smsService "zupsms_backend/internals/features/sms/service"
	settingCtrl "zupsms_backend/internals/features/sms/settings/controller"
	templateCtrl "zupsms_backend/internals/features/sms/templates/controller"
)

// SmsProtectedRoutes: réglages, templates, historique et outils de test,
// derrière le middleware JWT
func SmsProtectedRoutes(r fiber.Router, db *gorm.DB, gw *smsService.SweegoService) {
	settings := settingCtrl.NewSettingController(db, nil)
	sg := r.Group("/settings")
	sg.Get("/", settings.Get)
	sg.Put("/", settings.Upsert)

	templates := templateCtrl.NewMessageTemplateController(db, nil)
	tg := r.Group("/templates")
	tg.Get("/", templates.List)
	tg.Post("/", templates.Create)
	tg.Get("/:id", templates.GetByID)
	tg.Patch("/:id", templates.Update)
	tg.Delete("/:id", templates.Delete)

	logs := smsLogCtrl.NewSmsLogController(db)
	r.Get("/sms-logs", logs.List)

	tools := smsCtrl.NewSmsToolsController(gw)
	smsg := r.Group("/sms")
	smsg.Post("/test", tools.TestSend)
	smsg.Get("/test-config", tools.TestConfig)
	smsg.Get("/account", tools.Account)
}

// SmsPublicRoutes: le cron (auth par secret Bearer dédié) et le webhook
// de livraison Sweego. Montés hors JWT.
func SmsPublicRoutes(r fiber.Router, db *gorm.DB, gw *smsService.SweegoService) {
	reminder := reminderCtrl.NewReminderController(db, gw)
	r.Get("/cron/send-reminders", reminder.SendReminders)
	r.Post("/cron/send-reminders", reminder.SendReminders)

	webhook := smsCtrl.NewWebhookController(db)
	r.Post("/sms/webhook", webhook.HandleDeliveryStatus)
	r.Get("/sms/webhook", webhook.WebhookInfo)
}

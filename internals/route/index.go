// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardRoute "zupsms_backend/internals/features/home/dashboard/route"
	smsRoute "zupsms_backend/internals/features/sms/route"
	smsService "zupsms_backend/internals/features/sms/service"
	studentRoute "zupsms_backend/internals/features/tutoring/students/route"
	tutorRoute "zupsms_backend/internals/features/tutoring/tutors/route"
	authRoute "zupsms_backend/internals/features/users/auth/route"
	"zupsms_backend/internals/middlewares/auth"
)

// SetupRoutes câble tout le routing.
//
//	/                      racine + /health
//	/auth/*                login/register (public, rate-limité)
//	/api/cron/*, /api/sms/webhook   public, auth dédiée (secret cron / signature)
//	/api/*                 tout le reste derrière le JWT
func SetupRoutes(app *fiber.App, db *gorm.DB, gw *smsService.SweegoService) {
	BaseRoutes(app)

	authRoute.AuthPublicRoutes(app, db)

	api := app.Group("/api")

	// endpoints machine-to-machine, pas de JWT utilisateur
	smsRoute.SmsPublicRoutes(api, db, gw)

	// avatars servis en statique
	app.Static("/uploads", "./uploads")

	protected := api.Group("", auth.AuthMiddleware())
	authRoute.AuthProtectedRoutes(protected, db)
	dashboardRoute.DashboardRoutes(protected, db)
	studentRoute.StudentRoutes(protected, db)
	tutorRoute.TutorRoutes(protected, db)
	smsRoute.SmsProtectedRoutes(protected, db, gw)
}

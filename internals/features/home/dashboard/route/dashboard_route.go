package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashCtrl "zupsms_backend/internals/features/home/dashboard/controller"
)

func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dashCtrl.NewDashboardController(db)
	r.Get("/dashboard", ctl.Overview)
}

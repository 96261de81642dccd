package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tutorCtrl "zupsms_backend/internals/features/tutoring/tutors/controller"
)

func TutorRoutes(r fiber.Router, db *gorm.DB) {
	ctl := tutorCtrl.NewTutorController(db, nil)

	g := r.Group("/tutors")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/avatar", ctl.UploadAvatar)
}

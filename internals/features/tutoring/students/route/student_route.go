package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtrl "zupsms_backend/internals/features/tutoring/students/controller"
)

func StudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentCtrl.NewStudentController(db, nil)

	g := r.Group("/students")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	// bulk-toggle avant /:id sinon fiber matche "bulk-toggle" comme id
	g.Patch("/bulk-toggle", ctl.BulkToggle)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
	g.Patch("/:id/toggle", ctl.Toggle)
}

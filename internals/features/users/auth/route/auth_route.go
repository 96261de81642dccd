package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtrl "zupsms_backend/internals/features/users/auth/controller"
	"zupsms_backend/internals/middlewares"
)

// AuthPublicRoutes: login/register, montés hors du middleware JWT
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authCtrl.NewAuthController(db, nil)

	g := r.Group("/auth")
	g.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	g.Post("/login-google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)
}

// AuthProtectedRoutes: nécessitent un token valide
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authCtrl.NewAuthController(db, nil)

	g := r.Group("/auth")
	g.Get("/me", ctl.Me)
	g.Post("/logout", ctl.Logout)

	r.Get("/users", ctl.ListUsers)
}

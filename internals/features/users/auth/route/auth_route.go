package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/users/auth/controller"
	"gerejaku_backend/internals/middlewares"
)

// Rute publik auth; login dipagari rate limiter khusus.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.LoginRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
}

// Rute user terautentikasi.
func AuthUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)
	api.Get("/me", ctrl.Me)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/sermons/controller"
)

func AllSermonRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSermonPublicController(db)

	sermons := api.Group("/sermons")
	sermons.Get("/", ctrl.GetSermons)
	sermons.Get("/:slug", ctrl.GetSermonBySlug)
}

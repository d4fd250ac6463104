package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/sermons/controller"
)

func SermonAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSermonAdminController(db)

	sermons := admin.Group("/sermons")
	sermons.Post("/", ctrl.CreateSermon)
	sermons.Put("/:id", ctrl.UpdateSermon)
	sermons.Delete("/:id", ctrl.DeleteSermon)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/testimonies/controller"
)

func AllTestimonyRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestimonyController(db)
	api.Get("/testimonies", ctrl.GetApprovedTestimonies)
}

func TestimonyUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestimonyController(db)

	testimonies := api.Group("/testimonies")
	testimonies.Post("/", ctrl.CreateTestimony)
	testimonies.Get("/", ctrl.GetMyTestimonies)
}

func TestimonyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestimonyController(db)

	testimonies := admin.Group("/testimonies")
	testimonies.Get("/", ctrl.GetAllTestimonies)
	testimonies.Put("/:id/approve", ctrl.ApproveTestimony)
	testimonies.Delete("/:id", ctrl.DeleteTestimony)
}

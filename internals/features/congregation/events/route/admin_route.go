package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/events/controller"
)

func EventAdminRoutes(admin fiber.Router, db *gorm.DB) {
	eventCtrl := controller.NewEventController(db)
	serviceTimeCtrl := controller.NewServiceTimeController(db)

	events := admin.Group("/events")
	events.Post("/", eventCtrl.CreateEvent)
	events.Put("/:id", eventCtrl.UpdateEvent)
	events.Delete("/:id", eventCtrl.DeleteEvent)

	serviceTimes := admin.Group("/service-times")
	serviceTimes.Post("/", serviceTimeCtrl.CreateServiceTime)
	serviceTimes.Put("/:id", serviceTimeCtrl.UpdateServiceTime)
	serviceTimes.Delete("/:id", serviceTimeCtrl.DeleteServiceTime)
}

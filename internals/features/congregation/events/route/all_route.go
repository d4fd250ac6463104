package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/events/controller"
)

func AllEventRoutes(api fiber.Router, db *gorm.DB) {
	eventCtrl := controller.NewEventController(db)
	serviceTimeCtrl := controller.NewServiceTimeController(db)

	events := api.Group("/events")
	events.Get("/", eventCtrl.GetEvents)
	events.Get("/:slug", eventCtrl.GetEventBySlug)

	api.Get("/service-times", serviceTimeCtrl.GetServiceTimes)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/prayer/rooms/controller"
)

// Rute publik (tanpa auth): daftar room + detail by slug.
func AllPrayerRoomRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPrayerRoomPublicController(db)

	rooms := api.Group("/prayer-rooms")
	rooms.Get("/", ctrl.GetPrayerRooms)
	rooms.Get("/:slug", ctrl.GetPrayerRoomBySlug)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/prayer/rooms/controller"
)

// Mount di parent group: /api/a (sudah dipagari AuthJWT + RequireRoles admin).
func PrayerRoomAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPrayerRoomAdminController(db)

	rooms := admin.Group("/prayer-rooms")
	rooms.Post("/", ctrl.CreatePrayerRoom)
	rooms.Get("/", ctrl.GetAllPrayerRooms)
	rooms.Get("/:id", ctrl.GetPrayerRoomByID)
	rooms.Put("/:id", ctrl.UpdatePrayerRoom)
	rooms.Delete("/:id", ctrl.DeletePrayerRoom)
	rooms.Post("/:id/recording/reset", ctrl.ForceResetRecording)
}

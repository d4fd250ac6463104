package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/prayer/rooms/controller"
	"gerejaku_backend/internals/middlewares"
)

// Mount di parent group: /api/u (sudah dipagari AuthJWT di parent).
func PrayerRoomUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPrayerRoomUserController(db)

	rooms := api.Group("/prayer-rooms")
	rooms.Post("/:id/join", ctrl.JoinPrayerRoom)
	rooms.Post("/:id/recordings", middlewares.RecordingUploadRateLimiter(), ctrl.SubmitRecording)
}

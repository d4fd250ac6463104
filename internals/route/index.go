package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/configs"
	"gerejaku_backend/internals/constants"
	authMiddleware "gerejaku_backend/internals/middlewares/auth"

	eventRoute "gerejaku_backend/internals/features/congregation/events/route"
	sermonRoute "gerejaku_backend/internals/features/congregation/sermons/route"
	testimonyRoute "gerejaku_backend/internals/features/congregation/testimonies/route"
	prayerRoomRoute "gerejaku_backend/internals/features/prayer/rooms/route"
	authRoute "gerejaku_backend/internals/features/users/auth/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	api := app.Group("/api")

	// ===================== AUTH =====================
	log.Println("[INFO] Mounting auth routes...")
	authRoute.AuthRoutes(api, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Mounting PUBLIC group...")
	public := app.Group("/api/public")
	prayerRoomRoute.AllPrayerRoomRoutes(public, db)
	sermonRoute.AllSermonRoutes(public, db)
	eventRoute.AllEventRoutes(public, db)
	testimonyRoute.AllTestimonyRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Mounting PRIVATE group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)
	authRoute.AuthUserRoutes(private, db)
	prayerRoomRoute.PrayerRoomUserRoutes(private, db)
	testimonyRoute.TestimonyUserRoutes(private, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Mounting ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireRoles(constants.RoleErrorAdmin("admin"), constants.AdminAndAbove...),
	)
	prayerRoomRoute.PrayerRoomAdminRoutes(admin, db)
	sermonRoute.SermonAdminRoutes(admin, db)
	eventRoute.EventAdminRoutes(admin, db)
	testimonyRoute.TestimonyAdminRoutes(admin, db)
}

package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/prayer/rooms/dto"
	"gerejaku_backend/internals/features/prayer/rooms/model"
	"gerejaku_backend/internals/features/prayer/rooms/schedule"
	"gerejaku_backend/internals/features/prayer/rooms/service"
	helper "gerejaku_backend/internals/helpers"
)

type PrayerRoomPublicController struct {
	DB *gorm.DB
}

func NewPrayerRoomPublicController(db *gorm.DB) *PrayerRoomPublicController {
	return &PrayerRoomPublicController{DB: db}
}

// 🟢 GET /api/public/prayer-rooms
// ?active=true hanya mengembalikan room yang jadwalnya sedang buka.
func (ctrl *PrayerRoomPublicController) GetPrayerRooms(c *fiber.Ctx) error {
	onlyActive := c.Query("active") == "true"
	paging := helper.ResolvePaging(c, 20, 100)

	var rooms []model.PrayerRoomModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("prayer_room_created_at DESC").
		Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar ruang doa")
	}

	cfg := scheduleConfig()
	now := time.Now()
	resp := make([]dto.PrayerRoomResponse, 0, len(rooms))
	for i := range rooms {
		active := schedule.IsRoomActive(cfg, &rooms[i], now)
		if onlyActive && !active {
			continue
		}
		resp = append(resp, *dto.ToPrayerRoomResponse(&rooms[i], active))
	}

	// Filter aktif dievaluasi in-memory, jadi paging juga di sini.
	total := int64(len(resp))
	start := paging.Offset
	if start > len(resp) {
		start = len(resp)
	}
	end := start + paging.PerPage
	if end > len(resp) {
		end = len(resp)
	}

	return helper.JsonList(c, "Daftar ruang doa berhasil diambil", resp[start:end],
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/public/prayer-rooms/:slug
func (ctrl *PrayerRoomPublicController) GetPrayerRoomBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var room model.PrayerRoomModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&room, "LOWER(prayer_room_slug) = LOWER(?)", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrRoomNotFound.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ruang doa")
	}

	active := schedule.IsRoomActive(scheduleConfig(), &room, time.Now())
	return helper.JsonOK(c, "Detail ruang doa berhasil diambil", dto.ToPrayerRoomResponse(&room, active))
}

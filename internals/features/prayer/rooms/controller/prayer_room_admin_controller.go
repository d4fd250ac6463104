package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gerejaku_backend/internals/configs"
	"gerejaku_backend/internals/features/prayer/rooms/dto"
	"gerejaku_backend/internals/features/prayer/rooms/model"
	"gerejaku_backend/internals/features/prayer/rooms/schedule"
	"gerejaku_backend/internals/features/prayer/rooms/service"
	helper "gerejaku_backend/internals/helpers"
)

var validate = validator.New()

type PrayerRoomAdminController struct {
	DB *gorm.DB
}

func NewPrayerRoomAdminController(db *gorm.DB) *PrayerRoomAdminController {
	return &PrayerRoomAdminController{DB: db}
}

func scheduleConfig() schedule.Config {
	return schedule.Config{
		DefaultTimezoneOffsetMinutes: configs.DefaultPrayerTimezoneOffsetMinutes(),
	}
}

// validateScheduleTimes: jam harus "HH:MM" valid bila terisi.
func validateScheduleTimes(startTime, endTime string) map[string][]string {
	fieldErrors := map[string][]string{}
	if startTime != "" {
		if _, ok := schedule.ParseMinuteOfDay(startTime); !ok {
			fieldErrors["prayer_room_start_time"] = []string{"format harus HH:MM (00:00 - 23:59)"}
		}
	}
	if endTime != "" {
		if _, ok := schedule.ParseMinuteOfDay(endTime); !ok {
			fieldErrors["prayer_room_end_time"] = []string{"format harus HH:MM (00:00 - 23:59)"}
		}
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// 🟢 POST /api/a/prayer-rooms
func (ctrl *PrayerRoomAdminController) CreatePrayerRoom(c *fiber.Ctx) error {
	var req dto.CreatePrayerRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if fieldErrors := validateScheduleTimes(req.PrayerRoomStartTime, req.PrayerRoomEndTime); fieldErrors != nil {
		return helper.JsonValidationError(c, fieldErrors)
	}
	if req.PrayerRoomScheduleKind == model.ScheduleKindSingleSession &&
		(req.PrayerRoomDate == nil || *req.PrayerRoomDate == "") {
		return helper.JsonValidationError(c, map[string][]string{
			"prayer_room_date": {"wajib diisi untuk jadwal single_session"},
		})
	}

	room, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal sesi tidak valid")
	}

	// Slug unik (case-insensitive) dari nama room.
	base := helper.Slugify(room.PrayerRoomName, 100)
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctrl.DB, "prayer_rooms", "prayer_room_slug", base, nil, 100)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug unik")
	}
	room.PrayerRoomSlug = slug

	// Channel id media dibuat sekali di sini, bukan dari input client.
	room.PrayerRoomChannelID = "prayer-" + uuid.NewString()
	room.PrayerRoomRecordingStatus = model.RecordingStatusIdle

	if err := ctrl.DB.WithContext(c.Context()).Create(room).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat ruang doa")
	}

	active := schedule.IsRoomActive(scheduleConfig(), room, time.Now())
	return helper.JsonCreated(c, "Ruang doa berhasil dibuat", dto.ToPrayerRoomResponse(room, active))
}

// 🟢 GET /api/a/prayer-rooms
func (ctrl *PrayerRoomAdminController) GetAllPrayerRooms(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.PrayerRoomModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung ruang doa")
	}

	var rooms []model.PrayerRoomModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("prayer_room_created_at DESC").
		Limit(paging.PerPage).
		Offset(paging.Offset).
		Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar ruang doa")
	}

	cfg := scheduleConfig()
	now := time.Now()
	resp := make([]dto.PrayerRoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = *dto.ToPrayerRoomResponse(&rooms[i], schedule.IsRoomActive(cfg, &rooms[i], now))
	}

	return helper.JsonList(c, "Daftar ruang doa berhasil diambil", resp,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/a/prayer-rooms/:id
func (ctrl *PrayerRoomAdminController) GetPrayerRoomByID(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ruang doa tidak valid")
	}

	var room model.PrayerRoomModel
	if err := ctrl.DB.WithContext(c.Context()).First(&room, "prayer_room_id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrRoomNotFound.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ruang doa")
	}

	active := schedule.IsRoomActive(scheduleConfig(), &room, time.Now())
	detail, err := dto.ToPrayerRoomAdminDetailResponse(&room, active)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Arsip rekaman rusak")
	}
	return helper.JsonOK(c, "Detail ruang doa berhasil diambil", detail)
}

// 🟢 PUT /api/a/prayer-rooms/:id
func (ctrl *PrayerRoomAdminController) UpdatePrayerRoom(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ruang doa tidak valid")
	}

	var req dto.UpdatePrayerRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	startTime, endTime := "", ""
	if req.PrayerRoomStartTime != nil {
		startTime = *req.PrayerRoomStartTime
	}
	if req.PrayerRoomEndTime != nil {
		endTime = *req.PrayerRoomEndTime
	}
	if fieldErrors := validateScheduleTimes(startTime, endTime); fieldErrors != nil {
		return helper.JsonValidationError(c, fieldErrors)
	}

	var room model.PrayerRoomModel
	if err := ctrl.DB.WithContext(c.Context()).First(&room, "prayer_room_id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrRoomNotFound.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ruang doa")
	}

	nameChanged := req.PrayerRoomName != nil && *req.PrayerRoomName != room.PrayerRoomName
	if err := req.ApplyToModel(&room); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal sesi tidak valid")
	}

	// Slug ikut berubah bila nama berubah; channel id TIDAK pernah berubah.
	if nameChanged {
		base := helper.Slugify(room.PrayerRoomName, 100)
		slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctrl.DB, "prayer_rooms", "prayer_room_slug", base,
			func(q *gorm.DB) *gorm.DB { return q.Where("prayer_room_id <> ?", room.PrayerRoomID) }, 100)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug unik")
		}
		room.PrayerRoomSlug = slug
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(&room).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update ruang doa")
	}

	active := schedule.IsRoomActive(scheduleConfig(), &room, time.Now())
	return helper.JsonUpdated(c, "Ruang doa berhasil diperbarui", dto.ToPrayerRoomResponse(&room, active))
}

// 🔴 DELETE /api/a/prayer-rooms/:id (soft delete)
func (ctrl *PrayerRoomAdminController) DeletePrayerRoom(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ruang doa tidak valid")
	}

	var room model.PrayerRoomModel
	if err := ctrl.DB.WithContext(c.Context()).First(&room, "prayer_room_id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrRoomNotFound.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ruang doa")
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&room).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus ruang doa")
	}

	return helper.JsonDeleted(c, "Ruang doa berhasil dihapus", fiber.Map{"prayer_room_id": roomID})
}

// 🟡 POST /api/a/prayer-rooms/:id/recording/reset
// Pintu darurat: paksa lifecycle kembali idle (mis. recorder hilang
// tapi admin tidak mau menunggu batas staleness).
func (ctrl *PrayerRoomAdminController) ForceResetRecording(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ruang doa tidak valid")
	}

	store := service.NewGormLifecycleStore(ctrl.DB)
	if _, err := store.GetRoom(c.Context(), roomID); err != nil {
		return mapPrayerRoomError(c, err)
	}
	if err := store.ResetToIdle(c.Context(), roomID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal reset status rekaman")
	}

	return helper.JsonUpdated(c, "Status rekaman direset ke idle", fiber.Map{"prayer_room_id": roomID})
}

package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/events/dto"
	"gerejaku_backend/internals/features/congregation/events/model"
	helper "gerejaku_backend/internals/helpers"
)

var validate = validator.New()

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

// 🟢 GET /api/public/events?upcoming=true
func (ctrl *EventController) GetEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.EventModel{})
	if c.Query("upcoming", "true") == "true" {
		q = q.Where("event_start_at >= ?", time.Now()).Order("event_start_at ASC")
	} else {
		q = q.Order("event_start_at DESC")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung event")
	}

	var events []model.EventModel
	if err := q.Limit(paging.PerPage).Offset(paging.Offset).Find(&events).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar event")
	}

	return helper.JsonList(c, "Daftar event berhasil diambil", events,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/public/events/:slug
func (ctrl *EventController) GetEventBySlug(c *fiber.Ctx) error {
	var event model.EventModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&event, "LOWER(event_slug) = LOWER(?)", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil event")
	}
	return helper.JsonOK(c, "Detail event berhasil diambil", event)
}

// 🟢 POST /api/a/events
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	event, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Waktu event tidak valid (RFC3339)")
	}

	base := helper.Slugify(event.EventTitle, 100)
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctrl.DB, "events", "event_slug", base, nil, 100)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug unik")
	}
	event.EventSlug = slug

	if err := ctrl.DB.WithContext(c.Context()).Create(event).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat event")
	}

	return helper.JsonCreated(c, "Event berhasil dibuat", event)
}

// 🟢 PUT /api/a/events/:id
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	var event model.EventModel
	if err := ctrl.DB.WithContext(c.Context()).First(&event, "event_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil event")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.ApplyToModel(&event); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Waktu event tidak valid (RFC3339)")
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(&event).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update event")
	}

	return helper.JsonUpdated(c, "Event berhasil diperbarui", event)
}

// 🔴 DELETE /api/a/events/:id
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	res := ctrl.DB.WithContext(c.Context()).Delete(&model.EventModel{}, "event_id = ?", c.Params("id"))
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus event")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Event berhasil dihapus", fiber.Map{"event_id": c.Params("id")})
}

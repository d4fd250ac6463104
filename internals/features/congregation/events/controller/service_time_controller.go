package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/events/dto"
	"gerejaku_backend/internals/features/congregation/events/model"
	"gerejaku_backend/internals/features/prayer/rooms/schedule"
	helper "gerejaku_backend/internals/helpers"
)

type ServiceTimeController struct {
	DB *gorm.DB
}

func NewServiceTimeController(db *gorm.DB) *ServiceTimeController {
	return &ServiceTimeController{DB: db}
}

// 🟢 GET /api/public/service-times
func (ctrl *ServiceTimeController) GetServiceTimes(c *fiber.Ctx) error {
	var times []model.ServiceTimeModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("service_time_day_of_week ASC, service_time_start_time ASC").
		Find(&times).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jadwal ibadah")
	}
	return helper.JsonOK(c, "Jadwal ibadah berhasil diambil", times)
}

func validateServiceTimeRequest(c *fiber.Ctx, req *dto.ServiceTimeRequest) error {
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if _, ok := schedule.ParseMinuteOfDay(req.ServiceTimeStartTime); !ok {
		return helper.JsonValidationError(c, map[string][]string{
			"service_time_start_time": {"format harus HH:MM (00:00 - 23:59)"},
		})
	}
	if req.ServiceTimeEndTime != "" {
		if _, ok := schedule.ParseMinuteOfDay(req.ServiceTimeEndTime); !ok {
			return helper.JsonValidationError(c, map[string][]string{
				"service_time_end_time": {"format harus HH:MM (00:00 - 23:59)"},
			})
		}
	}
	return nil
}

// 🟢 POST /api/a/service-times
func (ctrl *ServiceTimeController) CreateServiceTime(c *fiber.Ctx) error {
	var req dto.ServiceTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validateServiceTimeRequest(c, &req); err != nil {
		return err
	}

	st := model.ServiceTimeModel{
		ServiceTimeName:      req.ServiceTimeName,
		ServiceTimeDayOfWeek: req.ServiceTimeDayOfWeek,
		ServiceTimeStartTime: req.ServiceTimeStartTime,
		ServiceTimeEndTime:   req.ServiceTimeEndTime,
		ServiceTimeLocation:  req.ServiceTimeLocation,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&st).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat jadwal ibadah")
	}

	return helper.JsonCreated(c, "Jadwal ibadah berhasil dibuat", st)
}

// 🟢 PUT /api/a/service-times/:id
func (ctrl *ServiceTimeController) UpdateServiceTime(c *fiber.Ctx) error {
	var st model.ServiceTimeModel
	if err := ctrl.DB.WithContext(c.Context()).First(&st, "service_time_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Jadwal ibadah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jadwal ibadah")
	}

	var req dto.ServiceTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validateServiceTimeRequest(c, &req); err != nil {
		return err
	}

	st.ServiceTimeName = req.ServiceTimeName
	st.ServiceTimeDayOfWeek = req.ServiceTimeDayOfWeek
	st.ServiceTimeStartTime = req.ServiceTimeStartTime
	st.ServiceTimeEndTime = req.ServiceTimeEndTime
	st.ServiceTimeLocation = req.ServiceTimeLocation

	if err := ctrl.DB.WithContext(c.Context()).Save(&st).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update jadwal ibadah")
	}

	return helper.JsonUpdated(c, "Jadwal ibadah berhasil diperbarui", st)
}

// 🔴 DELETE /api/a/service-times/:id
func (ctrl *ServiceTimeController) DeleteServiceTime(c *fiber.Ctx) error {
	res := ctrl.DB.WithContext(c.Context()).Delete(&model.ServiceTimeModel{}, "service_time_id = ?", c.Params("id"))
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus jadwal ibadah")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Jadwal ibadah tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Jadwal ibadah berhasil dihapus", fiber.Map{"service_time_id": c.Params("id")})
}

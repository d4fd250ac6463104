package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/testimonies/model"
	helper "gerejaku_backend/internals/helpers"
)

var validate = validator.New()

type CreateTestimonyRequest struct {
	TestimonyTitle   string `json:"testimony_title" validate:"required,min=3,max=255"`
	TestimonyContent string `json:"testimony_content" validate:"required,min=10,max=10000"`
}

type TestimonyController struct {
	DB *gorm.DB
}

func NewTestimonyController(db *gorm.DB) *TestimonyController {
	return &TestimonyController{DB: db}
}

// 🟢 GET /api/public/testimonies — hanya yang sudah disetujui.
func (ctrl *TestimonyController) GetApprovedTestimonies(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.TestimonyModel{}).
		Where("testimony_is_approved = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kesaksian")
	}

	var items []model.TestimonyModel
	if err := q.Order("testimony_approved_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kesaksian")
	}

	return helper.JsonList(c, "Daftar kesaksian berhasil diambil", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 POST /api/u/testimonies
func (ctrl *TestimonyController) CreateTestimony(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req CreateTestimonyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	testimony := model.TestimonyModel{
		TestimonyUserID:   userID,
		TestimonyUserName: helper.GetUserNameFromToken(c),
		TestimonyTitle:    strings.TrimSpace(req.TestimonyTitle),
		TestimonyContent:  req.TestimonyContent,
	}

	if err := ctrl.DB.WithContext(c.Context()).Create(&testimony).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kesaksian")
	}

	return helper.JsonCreated(c, "Kesaksian dikirim, menunggu moderasi", testimony)
}

// 🟢 GET /api/u/testimonies — milik user sendiri.
func (ctrl *TestimonyController) GetMyTestimonies(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var items []model.TestimonyModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("testimony_user_id = ?", userID).
		Order("testimony_created_at DESC").
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kesaksian")
	}

	return helper.JsonOK(c, "Daftar kesaksian kamu berhasil diambil", items)
}

// 🟢 GET /api/a/testimonies?approved=false — antrean moderasi.
func (ctrl *TestimonyController) GetAllTestimonies(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.TestimonyModel{})
	if v := c.Query("approved"); v != "" {
		q = q.Where("testimony_is_approved = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kesaksian")
	}

	var items []model.TestimonyModel
	if err := q.Order("testimony_created_at DESC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kesaksian")
	}

	return helper.JsonList(c, "Daftar kesaksian berhasil diambil", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 PUT /api/a/testimonies/:id/approve
func (ctrl *TestimonyController) ApproveTestimony(c *fiber.Ctx) error {
	var testimony model.TestimonyModel
	if err := ctrl.DB.WithContext(c.Context()).First(&testimony, "testimony_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kesaksian tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kesaksian")
	}

	now := time.Now()
	testimony.TestimonyIsApproved = true
	testimony.TestimonyApprovedAt = &now

	if err := ctrl.DB.WithContext(c.Context()).Save(&testimony).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyetujui kesaksian")
	}

	return helper.JsonUpdated(c, "Kesaksian disetujui", testimony)
}

// 🔴 DELETE /api/a/testimonies/:id
func (ctrl *TestimonyController) DeleteTestimony(c *fiber.Ctx) error {
	res := ctrl.DB.WithContext(c.Context()).Delete(&model.TestimonyModel{}, "testimony_id = ?", c.Params("id"))
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kesaksian")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kesaksian tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Kesaksian berhasil dihapus", fiber.Map{"testimony_id": c.Params("id")})
}

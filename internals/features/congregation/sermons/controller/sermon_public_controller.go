package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/sermons/dto"
	"gerejaku_backend/internals/features/congregation/sermons/model"
	helper "gerejaku_backend/internals/helpers"
)

type SermonPublicController struct {
	DB *gorm.DB
}

func NewSermonPublicController(db *gorm.DB) *SermonPublicController {
	return &SermonPublicController{DB: db}
}

// 🟢 GET /api/public/sermons?q=&tag=&page=&per_page=
func (ctrl *SermonPublicController) GetSermons(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.SermonModel{})
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("sermon_title ILIKE ? OR sermon_speaker ILIKE ?", like, like)
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		q = q.Where("? = ANY(sermon_tags)", tag)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung khotbah")
	}

	var sermons []model.SermonModel
	if err := q.
		Order("sermon_delivered_at DESC NULLS LAST, sermon_created_at DESC").
		Limit(paging.PerPage).
		Offset(paging.Offset).
		Find(&sermons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar khotbah")
	}

	return helper.JsonList(c, "Daftar khotbah berhasil diambil", dto.ToSermonResponseList(sermons),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/public/sermons/:slug
func (ctrl *SermonPublicController) GetSermonBySlug(c *fiber.Ctx) error {
	var sermon model.SermonModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&sermon, "LOWER(sermon_slug) = LOWER(?)", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Khotbah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil khotbah")
	}

	return helper.JsonOK(c, "Detail khotbah berhasil diambil", dto.ToSermonResponse(&sermon))
}

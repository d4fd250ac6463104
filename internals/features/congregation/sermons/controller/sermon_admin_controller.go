package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/congregation/sermons/dto"
	"gerejaku_backend/internals/features/congregation/sermons/model"
	helper "gerejaku_backend/internals/helpers"
	helperOSS "gerejaku_backend/internals/helpers/oss"
)

type SermonAdminController struct {
	DB  *gorm.DB
	OSS *helperOSS.OSSService // nil bila OSS tidak terkonfigurasi
}

func NewSermonAdminController(db *gorm.DB) *SermonAdminController {
	svc, err := helperOSS.NewOSSServiceFromEnv("sermons")
	if err != nil {
		log.Printf("[WARN] OSS tidak terkonfigurasi, upload media khotbah nonaktif: %v", err)
		svc = nil
	}
	return &SermonAdminController{DB: db, OSS: svc}
}

// parseTags: "iman, doa,kasih" → ["iman","doa","kasih"]
func parseTags(raw string) pq.StringArray {
	if strings.TrimSpace(raw) == "" {
		return pq.StringArray{}
	}
	parts := strings.Split(raw, ",")
	out := make(pq.StringArray, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// 🟢 POST /api/a/sermons (multipart)
func (ctrl *SermonAdminController) CreateSermon(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("sermon_title"))
	if title == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Judul khotbah wajib diisi")
	}

	base := helper.Slugify(title, 100)
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctrl.DB, "sermons", "sermon_slug", base, nil, 100)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug unik")
	}

	sermon := model.SermonModel{
		SermonTitle:       title,
		SermonSlug:        slug,
		SermonSpeaker:     strings.TrimSpace(c.FormValue("sermon_speaker")),
		SermonDescription: c.FormValue("sermon_description"),
		SermonTags:        parseTags(c.FormValue("sermon_tags")),
	}

	if v := strings.TrimSpace(c.FormValue("sermon_video_url")); v != "" {
		sermon.SermonVideoURL = &v
	}
	if v := strings.TrimSpace(c.FormValue("sermon_delivered_at")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal khotbah tidak valid (YYYY-MM-DD)")
		}
		sermon.SermonDeliveredAt = &d
	}

	// Poster → webp + thumbnail
	if fh, err := helperOSS.GetImageFile(c, "sermon_poster"); err == nil && fh != nil {
		if ctrl.OSS == nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Object storage tidak tersedia")
		}
		posterURL, thumbURL, err := ctrl.OSS.UploadAsWebP(c.Context(), fh, "sermons/posters")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Gagal upload poster")
		}
		sermon.SermonPosterURL = &posterURL
		sermon.SermonPosterThumbURL = &thumbURL
	}

	// Audio → upload apa adanya
	if fh, err := c.FormFile("sermon_audio"); err == nil && fh != nil {
		if ctrl.OSS == nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Object storage tidak tersedia")
		}
		key, _, err := ctrl.OSS.UploadFromFormFileToDir(c.Context(), "sermons/audio", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Gagal upload audio")
		}
		url := ctrl.OSS.PublicURL(key)
		sermon.SermonAudioURL = &url
		sermon.SermonAudioObjectKey = &key
	}

	if err := ctrl.DB.WithContext(c.Context()).Create(&sermon).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan khotbah")
	}

	return helper.JsonCreated(c, "Khotbah berhasil dibuat", dto.ToSermonResponse(&sermon))
}

// 🟢 PUT /api/a/sermons/:id (multipart, partial)
func (ctrl *SermonAdminController) UpdateSermon(c *fiber.Ctx) error {
	var sermon model.SermonModel
	if err := ctrl.DB.WithContext(c.Context()).First(&sermon, "sermon_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Khotbah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil khotbah")
	}

	titleChanged := false
	if v := strings.TrimSpace(c.FormValue("sermon_title")); v != "" && v != sermon.SermonTitle {
		sermon.SermonTitle = v
		titleChanged = true
	}
	if v := c.FormValue("sermon_speaker"); v != "" {
		sermon.SermonSpeaker = strings.TrimSpace(v)
	}
	if v := c.FormValue("sermon_description"); v != "" {
		sermon.SermonDescription = v
	}
	if v := c.FormValue("sermon_tags"); v != "" {
		sermon.SermonTags = parseTags(v)
	}
	if v := strings.TrimSpace(c.FormValue("sermon_video_url")); v != "" {
		sermon.SermonVideoURL = &v
	}
	if v := strings.TrimSpace(c.FormValue("sermon_delivered_at")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal khotbah tidak valid (YYYY-MM-DD)")
		}
		sermon.SermonDeliveredAt = &d
	}

	if titleChanged && strings.ToLower(c.FormValue("regenerate_slug")) != "false" {
		base := helper.Slugify(sermon.SermonTitle, 100)
		slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctrl.DB, "sermons", "sermon_slug", base,
			func(q *gorm.DB) *gorm.DB { return q.Where("sermon_id <> ?", sermon.SermonID) }, 100)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug unik")
		}
		sermon.SermonSlug = slug
	}

	// Ganti poster: hapus yang lama setelah upload baru sukses.
	if fh, err := helperOSS.GetImageFile(c, "sermon_poster"); err == nil && fh != nil {
		if ctrl.OSS == nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Object storage tidak tersedia")
		}
		posterURL, thumbURL, err := ctrl.OSS.UploadAsWebP(c.Context(), fh, "sermons/posters")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Gagal upload poster")
		}
		if sermon.SermonPosterURL != nil {
			_ = ctrl.OSS.DeleteByPublicURL(c.Context(), *sermon.SermonPosterURL)
		}
		if sermon.SermonPosterThumbURL != nil {
			_ = ctrl.OSS.DeleteByPublicURL(c.Context(), *sermon.SermonPosterThumbURL)
		}
		sermon.SermonPosterURL = &posterURL
		sermon.SermonPosterThumbURL = &thumbURL
	}

	if fh, err := c.FormFile("sermon_audio"); err == nil && fh != nil {
		if ctrl.OSS == nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Object storage tidak tersedia")
		}
		key, _, err := ctrl.OSS.UploadFromFormFileToDir(c.Context(), "sermons/audio", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadGateway, "Gagal upload audio")
		}
		if sermon.SermonAudioObjectKey != nil {
			_ = ctrl.OSS.DeleteObject(c.Context(), *sermon.SermonAudioObjectKey)
		}
		url := ctrl.OSS.PublicURL(key)
		sermon.SermonAudioURL = &url
		sermon.SermonAudioObjectKey = &key
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(&sermon).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update khotbah")
	}

	return helper.JsonUpdated(c, "Khotbah berhasil diperbarui", dto.ToSermonResponse(&sermon))
}

// 🔴 DELETE /api/a/sermons/:id
func (ctrl *SermonAdminController) DeleteSermon(c *fiber.Ctx) error {
	var sermon model.SermonModel
	if err := ctrl.DB.WithContext(c.Context()).First(&sermon, "sermon_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Khotbah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil khotbah")
	}

	// Media di OSS ikut dibersihkan; gagal hapus media tidak membatalkan delete.
	if ctrl.OSS != nil {
		if sermon.SermonPosterURL != nil {
			_ = ctrl.OSS.DeleteByPublicURL(c.Context(), *sermon.SermonPosterURL)
		}
		if sermon.SermonPosterThumbURL != nil {
			_ = ctrl.OSS.DeleteByPublicURL(c.Context(), *sermon.SermonPosterThumbURL)
		}
		if sermon.SermonAudioObjectKey != nil {
			_ = ctrl.OSS.DeleteObject(c.Context(), *sermon.SermonAudioObjectKey)
		}
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&sermon).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus khotbah")
	}

	return helper.JsonDeleted(c, "Khotbah berhasil dihapus", fiber.Map{"sermon_id": sermon.SermonID})
}

package controller

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gerejaku_backend/internals/configs"
	"gerejaku_backend/internals/features/prayer/rooms/schedule"
	"gerejaku_backend/internals/features/prayer/rooms/service"
	helper "gerejaku_backend/internals/helpers"
	helperOSS "gerejaku_backend/internals/helpers/oss"
)

// unavailableBlobStorage dipakai saat OSS tidak terkonfigurasi supaya
// intent cancel tetap jalan; upload akan dibalas 502.
type unavailableBlobStorage struct{}

func (unavailableBlobStorage) UploadAudio(ctx context.Context, key string, r io.Reader, contentType string, sizeBytes int64) (*service.BlobUploadResult, error) {
	return nil, errors.New("object storage tidak terkonfigurasi")
}

type PrayerRoomUserController struct {
	DB     *gorm.DB
	Access *service.SessionAccess
	Ingest *service.RecordingIngest
}

func NewPrayerRoomUserController(db *gorm.DB) *PrayerRoomUserController {
	store := service.NewGormLifecycleStore(db)
	election := service.NewRecorderElection(store)

	var access *service.SessionAccess
	if issuer, err := service.NewLiveKitCredentialIssuer(configs.LiveKitAPIKey, configs.LiveKitAPISecret); err != nil {
		log.Printf("[WARN] LiveKit tidak terkonfigurasi, join ruang doa nonaktif: %v", err)
	} else {
		access = service.NewSessionAccess(store, election, issuer, service.SessionAccessConfig{
			Schedule: schedule.Config{
				DefaultTimezoneOffsetMinutes: configs.DefaultPrayerTimezoneOffsetMinutes(),
			},
			ServerURL: configs.LiveKitServerURL,
		})
	}

	var blobs service.BlobStorage = unavailableBlobStorage{}
	if svc, err := helperOSS.NewOSSServiceFromEnv("prayer-rooms"); err != nil {
		log.Printf("[WARN] OSS tidak terkonfigurasi, upload rekaman nonaktif: %v", err)
	} else {
		blobs = service.NewOSSBlobStorage(svc)
	}

	return &PrayerRoomUserController{
		DB:     db,
		Access: access,
		Ingest: service.NewRecordingIngest(store, blobs),
	}
}

// mapPrayerRoomError memetakan sentinel error domain ke kode HTTP.
func mapPrayerRoomError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrRoomNotFound.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrUnauthorized.Error())
	case errors.Is(err, service.ErrRoomNotActive):
		return helper.JsonError(c, fiber.StatusForbidden, service.ErrRoomNotActive.Error())
	case errors.Is(err, service.ErrInvalidToken):
		return helper.JsonError(c, fiber.StatusForbidden, service.ErrInvalidToken.Error())
	case errors.Is(err, service.ErrMissingPayload):
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrMissingPayload.Error())
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return helper.JsonError(c, fiber.StatusBadGateway, service.ErrUpstreamUnavailable.Error())
	default:
		log.Printf("[ERROR] prayer room: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

// 🟢 POST /api/u/prayer-rooms/:id/join
func (ctrl *PrayerRoomUserController) JoinPrayerRoom(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ruang doa tidak valid")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	displayName := helper.GetUserNameFromToken(c)

	if ctrl.Access == nil {
		return helper.JsonError(c, fiber.StatusBadGateway, service.ErrUpstreamUnavailable.Error())
	}

	res, err := ctrl.Access.JoinRoom(c.Context(), roomID, userID, displayName)
	if err != nil {
		return mapPrayerRoomError(c, err)
	}

	return helper.JsonOK(c, "Berhasil join ruang doa", res)
}

// 🟢 POST /api/u/prayer-rooms/:id/recordings
// Multipart: audio_file + recording_token (+ intent, started_at,
// ended_at, duration_ms opsional).
func (ctrl *PrayerRoomUserController) SubmitRecording(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID ruang doa tidak valid")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	token := strings.TrimSpace(c.FormValue("recording_token"))
	if token == "" {
		token = strings.TrimSpace(c.Get("X-Recording-Token"))
	}

	in := service.SubmitInput{
		RoomID:     roomID,
		Token:      token,
		Intent:     strings.TrimSpace(c.FormValue("intent")),
		UploadedBy: userID,
	}

	if v := strings.TrimSpace(c.FormValue("started_at")); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			in.StartedAt = &t
		}
	}
	if v := strings.TrimSpace(c.FormValue("ended_at")); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			in.EndedAt = &t
		}
	}
	if v := strings.TrimSpace(c.FormValue("duration_ms")); v != "" {
		if d, err := strconv.ParseInt(v, 10, 64); err == nil && d > 0 {
			in.DurationMillis = &d
		}
	}

	if in.Intent != service.IntentCancel {
		fh, err := c.FormFile("audio_file")
		if err != nil || fh == nil {
			return mapPrayerRoomError(c, service.ErrMissingPayload)
		}
		f, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "File audio tidak bisa dibaca")
		}
		defer f.Close()

		in.Payload = f
		in.PayloadSize = fh.Size
		in.ContentType = fh.Header.Get("Content-Type")
		in.FileExt = strings.ToLower(filepath.Ext(fh.Filename))
	}

	out, err := ctrl.Ingest.Submit(c.Context(), in)
	if err != nil {
		return mapPrayerRoomError(c, err)
	}

	if out.Cancelled {
		return helper.JsonOK(c, "Sesi rekaman dibatalkan", fiber.Map{"cancelled": true})
	}
	return helper.JsonCreated(c, "Rekaman berhasil disimpan", out.Entry)
}

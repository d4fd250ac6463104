package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

// MaxRecordingWindow: klaim recorder yang lebih tua dari ini dianggap
// ditinggalkan (client crash / koneksi putus) dan boleh di-reset.
const MaxRecordingWindow = 4 * time.Hour

// LifecycleStore membungkus persistensi state perekaman per room.
// Satu-satunya jaminan wajib: ClaimIfIdle adalah compare-and-swap tunggal
// di database, bukan read-then-write, supaya dua client yang balapan
// tidak bisa sama-sama jadi recorder.
type LifecycleStore interface {
	GetRoom(ctx context.Context, roomID uuid.UUID) (*model.PrayerRoomModel, error)

	// ClaimIfIdle set status=recording+token+holder+startedAt hanya bila
	// lifecycle belum dipegang. Return false bila klaim kalah balapan.
	ClaimIfIdle(ctx context.Context, roomID uuid.UUID, token string, holder uuid.UUID, startedAt time.Time) (bool, error)

	// ResetToIdle kosongkan lifecycle tanpa syarat (recovery klaim basi).
	ResetToIdle(ctx context.Context, roomID uuid.UUID) error

	// ResetIfTokenMatches kosongkan lifecycle hanya bila token masih yang
	// sekarang. Return false bila token sudah digantikan (replay).
	ResetIfTokenMatches(ctx context.Context, roomID uuid.UUID, token string) (bool, error)

	// ReplaceRecordingsAndReset tulis arsip rekaman baru + kosongkan
	// lifecycle, dikondisikan token masih cocok. Return false bila token
	// sudah digantikan.
	ReplaceRecordingsAndReset(ctx context.Context, roomID uuid.UUID, token string, recordings datatypes.JSON) (bool, error)
}

// GormLifecycleStore: implementasi LifecycleStore di atas tabel prayer_rooms.
type GormLifecycleStore struct {
	db *gorm.DB
}

func NewGormLifecycleStore(db *gorm.DB) *GormLifecycleStore {
	return &GormLifecycleStore{db: db}
}

func (s *GormLifecycleStore) GetRoom(ctx context.Context, roomID uuid.UUID) (*model.PrayerRoomModel, error) {
	var room model.PrayerRoomModel
	if err := s.db.WithContext(ctx).
		Where("prayer_room_id = ?", roomID).
		First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *GormLifecycleStore) ClaimIfIdle(ctx context.Context, roomID uuid.UUID, token string, holder uuid.UUID, startedAt time.Time) (bool, error) {
	// Satu UPDATE kondisional = titik mutual exclusion satu-satunya.
	res := s.db.WithContext(ctx).
		Model(&model.PrayerRoomModel{}).
		Where("prayer_room_id = ?", roomID).
		Where("prayer_room_recording_status <> ? OR prayer_room_recording_token IS NULL", model.RecordingStatusRecording).
		Updates(map[string]interface{}{
			"prayer_room_recording_status":         model.RecordingStatusRecording,
			"prayer_room_recording_token":          token,
			"prayer_room_recording_holder_user_id": holder,
			"prayer_room_recording_started_at":     startedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormLifecycleStore) ResetToIdle(ctx context.Context, roomID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&model.PrayerRoomModel{}).
		Where("prayer_room_id = ?", roomID).
		Updates(idleLifecyclePatch()).Error
}

func (s *GormLifecycleStore) ResetIfTokenMatches(ctx context.Context, roomID uuid.UUID, token string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.PrayerRoomModel{}).
		Where("prayer_room_id = ? AND prayer_room_recording_token = ?", roomID, token).
		Updates(idleLifecyclePatch())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormLifecycleStore) ReplaceRecordingsAndReset(ctx context.Context, roomID uuid.UUID, token string, recordings datatypes.JSON) (bool, error) {
	patch := idleLifecyclePatch()
	patch["prayer_room_recordings"] = recordings
	res := s.db.WithContext(ctx).
		Model(&model.PrayerRoomModel{}).
		Where("prayer_room_id = ? AND prayer_room_recording_token = ?", roomID, token).
		Updates(patch)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func idleLifecyclePatch() map[string]interface{} {
	return map[string]interface{}{
		"prayer_room_recording_status":         model.RecordingStatusIdle,
		"prayer_room_recording_token":          nil,
		"prayer_room_recording_holder_user_id": nil,
		"prayer_room_recording_started_at":     nil,
	}
}

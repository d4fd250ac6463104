package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Jenis jadwal ruang doa
const (
	ScheduleKindRecurringDaily = "recurring_daily" // jendela harian berulang
	ScheduleKindSingleSession  = "single_session"  // satu sesi pada tanggal tertentu
)

// Status lifecycle perekaman
const (
	RecordingStatusIdle      = "idle"
	RecordingStatusRecording = "recording"
)

type PrayerRoomModel struct {
	PrayerRoomID          uuid.UUID `gorm:"column:prayer_room_id;type:uuid;default:gen_random_uuid();primaryKey" json:"prayer_room_id"`
	PrayerRoomName        string    `gorm:"column:prayer_room_name;type:varchar(255);not null" json:"prayer_room_name"`
	PrayerRoomSlug        string    `gorm:"column:prayer_room_slug;type:varchar(100);not null" json:"prayer_room_slug"`
	PrayerRoomDescription string    `gorm:"column:prayer_room_description;type:text" json:"prayer_room_description"`

	// Nama room di platform conferencing (LiveKit). Dibuat sekali saat create,
	// bukan primary key — jangan pakai prayer_room_id untuk join media.
	PrayerRoomChannelID string `gorm:"column:prayer_room_channel_id;type:varchar(100);not null;uniqueIndex:ux_prayer_rooms_channel_id" json:"prayer_room_channel_id"`

	// Jadwal
	PrayerRoomScheduleKind       string     `gorm:"column:prayer_room_schedule_kind;type:varchar(30);not null;default:'recurring_daily'" json:"prayer_room_schedule_kind"`
	PrayerRoomDate               *time.Time `gorm:"column:prayer_room_date;type:date" json:"prayer_room_date,omitempty"` // hanya untuk single_session
	PrayerRoomStartTime          string     `gorm:"column:prayer_room_start_time;type:varchar(5)" json:"prayer_room_start_time"` // "HH:MM"
	PrayerRoomEndTime            string     `gorm:"column:prayer_room_end_time;type:varchar(5)" json:"prayer_room_end_time"`     // "HH:MM"
	PrayerRoomTimezoneOffsetMin  *int       `gorm:"column:prayer_room_timezone_offset_min" json:"prayer_room_timezone_offset_min,omitempty"`
	PrayerRoomIsManuallyActive   bool       `gorm:"column:prayer_room_is_manually_active;default:false" json:"prayer_room_is_manually_active"`
	PrayerRoomMaxParticipants    int        `gorm:"column:prayer_room_max_participants;default:0" json:"prayer_room_max_participants"`
	PrayerRoomAutoRecordAudio    bool       `gorm:"column:prayer_room_auto_record_audio;default:true" json:"prayer_room_auto_record_audio"`

	// Lifecycle perekaman (embedded, satu per room).
	// Invariant: token & holder dua-duanya NULL ⟺ status = idle.
	PrayerRoomRecordingStatus       string     `gorm:"column:prayer_room_recording_status;type:varchar(20);not null;default:'idle'" json:"prayer_room_recording_status"`
	PrayerRoomRecordingToken        *string    `gorm:"column:prayer_room_recording_token;type:varchar(64)" json:"-"`
	PrayerRoomRecordingHolderUserID *uuid.UUID `gorm:"column:prayer_room_recording_holder_user_id;type:uuid" json:"prayer_room_recording_holder_user_id,omitempty"`
	PrayerRoomRecordingStartedAt    *time.Time `gorm:"column:prayer_room_recording_started_at;type:timestamptz" json:"prayer_room_recording_started_at,omitempty"`

	// Arsip rekaman (JSONB, terbaru di depan, append-only dari sisi core)
	PrayerRoomRecordings datatypes.JSON `gorm:"column:prayer_room_recordings;type:jsonb" json:"prayer_room_recordings,omitempty"`

	PrayerRoomCreatedAt time.Time      `gorm:"column:prayer_room_created_at;type:timestamptz;autoCreateTime" json:"prayer_room_created_at"`
	PrayerRoomUpdatedAt time.Time      `gorm:"column:prayer_room_updated_at;type:timestamptz;autoUpdateTime" json:"prayer_room_updated_at"`
	PrayerRoomDeletedAt gorm.DeletedAt `gorm:"column:prayer_room_deleted_at;type:timestamptz;index" json:"prayer_room_deleted_at,omitempty"`
}

func (PrayerRoomModel) TableName() string {
	return "prayer_rooms"
}

// RecordingEntry: satu item arsip rekaman. Immutable setelah di-append.
type RecordingEntry struct {
	URL            string     `json:"url"`
	StorageID      string     `json:"storage_id"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	DurationMillis *int64     `json:"duration_millis,omitempty"`
	SizeBytes      int64      `json:"size_bytes"`
	StartedBy      *uuid.UUID `json:"started_by,omitempty"`
	UploadedBy     uuid.UUID  `json:"uploaded_by"`
}

// DecodeRecordings membaca kolom JSONB jadi slice entry (terbaru di depan).
func (m *PrayerRoomModel) DecodeRecordings() ([]RecordingEntry, error) {
	if len(m.PrayerRoomRecordings) == 0 {
		return nil, nil
	}
	var out []RecordingEntry
	if err := json.Unmarshal(m.PrayerRoomRecordings, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeRecordings serialisasi slice entry ke JSONB.
func EncodeRecordings(entries []RecordingEntry) (datatypes.JSON, error) {
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

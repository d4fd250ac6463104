package dto

import (
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

// Request membuat ruang doa baru (admin).
type CreatePrayerRoomRequest struct {
	PrayerRoomName        string `json:"prayer_room_name" validate:"required,min=3,max=255"`
	PrayerRoomDescription string `json:"prayer_room_description" validate:"max=2000"`

	PrayerRoomScheduleKind      string  `json:"prayer_room_schedule_kind" validate:"omitempty,oneof=recurring_daily single_session"`
	PrayerRoomDate              *string `json:"prayer_room_date" validate:"omitempty,datetime=2006-01-02"` // wajib untuk single_session
	PrayerRoomStartTime         string  `json:"prayer_room_start_time" validate:"omitempty,len=5"`         // "HH:MM"
	PrayerRoomEndTime           string  `json:"prayer_room_end_time" validate:"omitempty,len=5"`
	PrayerRoomTimezoneOffsetMin *int    `json:"prayer_room_timezone_offset_min" validate:"omitempty,min=-720,max=840"`

	PrayerRoomIsManuallyActive bool `json:"prayer_room_is_manually_active"`
	PrayerRoomMaxParticipants  int  `json:"prayer_room_max_participants" validate:"omitempty,min=0,max=1000"`
	PrayerRoomAutoRecordAudio  *bool `json:"prayer_room_auto_record_audio"`
}

// Request update ruang doa; pointer = field opsional (partial update).
type UpdatePrayerRoomRequest struct {
	PrayerRoomName        *string `json:"prayer_room_name" validate:"omitempty,min=3,max=255"`
	PrayerRoomDescription *string `json:"prayer_room_description" validate:"omitempty,max=2000"`

	PrayerRoomScheduleKind      *string `json:"prayer_room_schedule_kind" validate:"omitempty,oneof=recurring_daily single_session"`
	PrayerRoomDate              *string `json:"prayer_room_date" validate:"omitempty,datetime=2006-01-02"`
	PrayerRoomStartTime         *string `json:"prayer_room_start_time" validate:"omitempty,len=5"`
	PrayerRoomEndTime           *string `json:"prayer_room_end_time" validate:"omitempty,len=5"`
	PrayerRoomTimezoneOffsetMin *int    `json:"prayer_room_timezone_offset_min" validate:"omitempty,min=-720,max=840"`

	PrayerRoomIsManuallyActive *bool `json:"prayer_room_is_manually_active"`
	PrayerRoomMaxParticipants  *int  `json:"prayer_room_max_participants" validate:"omitempty,min=0,max=1000"`
	PrayerRoomAutoRecordAudio  *bool `json:"prayer_room_auto_record_audio"`
}

// ApplyToModel menyalin field yang terisi ke model existing.
// Catatan: jadwal boleh di-nol-kan via string kosong ("" = hapus jam).
func (r *UpdatePrayerRoomRequest) ApplyToModel(m *model.PrayerRoomModel) error {
	if r.PrayerRoomName != nil {
		m.PrayerRoomName = *r.PrayerRoomName
	}
	if r.PrayerRoomDescription != nil {
		m.PrayerRoomDescription = *r.PrayerRoomDescription
	}
	if r.PrayerRoomScheduleKind != nil {
		m.PrayerRoomScheduleKind = *r.PrayerRoomScheduleKind
	}
	if r.PrayerRoomDate != nil {
		if *r.PrayerRoomDate == "" {
			m.PrayerRoomDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *r.PrayerRoomDate)
			if err != nil {
				return err
			}
			m.PrayerRoomDate = &d
		}
	}
	if r.PrayerRoomStartTime != nil {
		m.PrayerRoomStartTime = *r.PrayerRoomStartTime
	}
	if r.PrayerRoomEndTime != nil {
		m.PrayerRoomEndTime = *r.PrayerRoomEndTime
	}
	if r.PrayerRoomTimezoneOffsetMin != nil {
		m.PrayerRoomTimezoneOffsetMin = r.PrayerRoomTimezoneOffsetMin
	}
	if r.PrayerRoomIsManuallyActive != nil {
		m.PrayerRoomIsManuallyActive = *r.PrayerRoomIsManuallyActive
	}
	if r.PrayerRoomMaxParticipants != nil {
		m.PrayerRoomMaxParticipants = *r.PrayerRoomMaxParticipants
	}
	if r.PrayerRoomAutoRecordAudio != nil {
		m.PrayerRoomAutoRecordAudio = *r.PrayerRoomAutoRecordAudio
	}
	return nil
}

// ToModel bangun model baru dari request create. Slug & channel id
// diisi controller.
func (r *CreatePrayerRoomRequest) ToModel() (*model.PrayerRoomModel, error) {
	m := &model.PrayerRoomModel{
		PrayerRoomName:              r.PrayerRoomName,
		PrayerRoomDescription:       r.PrayerRoomDescription,
		PrayerRoomScheduleKind:      model.ScheduleKindRecurringDaily,
		PrayerRoomStartTime:         r.PrayerRoomStartTime,
		PrayerRoomEndTime:           r.PrayerRoomEndTime,
		PrayerRoomTimezoneOffsetMin: r.PrayerRoomTimezoneOffsetMin,
		PrayerRoomIsManuallyActive:  r.PrayerRoomIsManuallyActive,
		PrayerRoomMaxParticipants:   r.PrayerRoomMaxParticipants,
		PrayerRoomAutoRecordAudio:   true,
	}
	if r.PrayerRoomScheduleKind != "" {
		m.PrayerRoomScheduleKind = r.PrayerRoomScheduleKind
	}
	if r.PrayerRoomAutoRecordAudio != nil {
		m.PrayerRoomAutoRecordAudio = *r.PrayerRoomAutoRecordAudio
	}
	if r.PrayerRoomDate != nil && *r.PrayerRoomDate != "" {
		d, err := time.Parse("2006-01-02", *r.PrayerRoomDate)
		if err != nil {
			return nil, err
		}
		m.PrayerRoomDate = &d
	}
	return m, nil
}

// Response ruang doa untuk listing & detail.
// Token recording tidak pernah ikut (json:"-" di model).
type PrayerRoomResponse struct {
	PrayerRoomID          uuid.UUID `json:"prayer_room_id"`
	PrayerRoomName        string    `json:"prayer_room_name"`
	PrayerRoomSlug        string    `json:"prayer_room_slug"`
	PrayerRoomDescription string    `json:"prayer_room_description"`
	PrayerRoomChannelID   string    `json:"prayer_room_channel_id"`

	PrayerRoomScheduleKind      string     `json:"prayer_room_schedule_kind"`
	PrayerRoomDate              *time.Time `json:"prayer_room_date,omitempty"`
	PrayerRoomStartTime         string     `json:"prayer_room_start_time"`
	PrayerRoomEndTime           string     `json:"prayer_room_end_time"`
	PrayerRoomTimezoneOffsetMin *int       `json:"prayer_room_timezone_offset_min,omitempty"`
	PrayerRoomIsManuallyActive  bool       `json:"prayer_room_is_manually_active"`
	PrayerRoomMaxParticipants   int        `json:"prayer_room_max_participants"`
	PrayerRoomAutoRecordAudio   bool       `json:"prayer_room_auto_record_audio"`

	PrayerRoomRecordingStatus string     `json:"prayer_room_recording_status"`
	PrayerRoomIsActive        bool       `json:"prayer_room_is_active"`
	PrayerRoomCreatedAt       time.Time  `json:"prayer_room_created_at"`
	PrayerRoomUpdatedAt       time.Time  `json:"prayer_room_updated_at"`
}

func ToPrayerRoomResponse(m *model.PrayerRoomModel, isActive bool) *PrayerRoomResponse {
	return &PrayerRoomResponse{
		PrayerRoomID:                m.PrayerRoomID,
		PrayerRoomName:              m.PrayerRoomName,
		PrayerRoomSlug:              m.PrayerRoomSlug,
		PrayerRoomDescription:       m.PrayerRoomDescription,
		PrayerRoomChannelID:         m.PrayerRoomChannelID,
		PrayerRoomScheduleKind:      m.PrayerRoomScheduleKind,
		PrayerRoomDate:              m.PrayerRoomDate,
		PrayerRoomStartTime:         m.PrayerRoomStartTime,
		PrayerRoomEndTime:           m.PrayerRoomEndTime,
		PrayerRoomTimezoneOffsetMin: m.PrayerRoomTimezoneOffsetMin,
		PrayerRoomIsManuallyActive:  m.PrayerRoomIsManuallyActive,
		PrayerRoomMaxParticipants:   m.PrayerRoomMaxParticipants,
		PrayerRoomAutoRecordAudio:   m.PrayerRoomAutoRecordAudio,
		PrayerRoomRecordingStatus:   m.PrayerRoomRecordingStatus,
		PrayerRoomIsActive:          isActive,
		PrayerRoomCreatedAt:         m.PrayerRoomCreatedAt,
		PrayerRoomUpdatedAt:         m.PrayerRoomUpdatedAt,
	}
}

// Detail admin: response + arsip rekaman.
type PrayerRoomAdminDetailResponse struct {
	PrayerRoomResponse
	PrayerRoomRecordings []model.RecordingEntry `json:"prayer_room_recordings"`
}

func ToPrayerRoomAdminDetailResponse(m *model.PrayerRoomModel, isActive bool) (*PrayerRoomAdminDetailResponse, error) {
	entries, err := m.DecodeRecordings()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.RecordingEntry{}
	}
	return &PrayerRoomAdminDetailResponse{
		PrayerRoomResponse:   *ToPrayerRoomResponse(m, isActive),
		PrayerRoomRecordings: entries,
	}, nil
}

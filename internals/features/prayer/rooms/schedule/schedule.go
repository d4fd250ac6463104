// Package schedule berisi evaluasi murni "apakah ruang doa sedang buka"
// terhadap satu instant referensi. Tidak membaca ENV — offset default
// dikirim lewat Config saat konstruksi service.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

type Config struct {
	// Offset timezone default (menit dari UTC) untuk room yang tidak
	// menyetel offset sendiri.
	DefaultTimezoneOffsetMinutes int
}

func (cfg Config) offsetMinutes(room *model.PrayerRoomModel) int {
	if room.PrayerRoomTimezoneOffsetMin != nil {
		return *room.PrayerRoomTimezoneOffsetMin
	}
	return cfg.DefaultTimezoneOffsetMinutes
}

// ParseMinuteOfDay parse "HH:MM" → menit-ke-berapa dalam sehari.
// Ketat: dua komponen, 0<=HH<=23, 0<=MM<=59.
func ParseMinuteOfDay(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hh, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	mm, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, false
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

// IsRecurringWindowOpen: jendela harian berulang, inklusif di kedua ujung.
// start > end berarti jendela melewati tengah malam.
// Kedua batas kosong/rusak dianggap selalu buka (kompat dengan data room
// lama yang tidak mengisi jam); hanya salah satu rusak = tutup.
func IsRecurringWindowOpen(cfg Config, room *model.PrayerRoomModel, now time.Time) bool {
	start, okStart := ParseMinuteOfDay(room.PrayerRoomStartTime)
	end, okEnd := ParseMinuteOfDay(room.PrayerRoomEndTime)

	if !okStart && !okEnd {
		return true
	}
	if !okStart || !okEnd {
		return false
	}

	local := now.UTC().Add(time.Duration(cfg.offsetMinutes(room)) * time.Minute)
	minute := local.Hour()*60 + local.Minute()

	switch {
	case start == end:
		return true
	case start < end:
		return minute >= start && minute <= end
	default: // melewati tengah malam
		return minute >= start || minute <= end
	}
}

// IsSingleSessionWindowOpen: sesi sekali jalan pada tanggal tertentu.
// Tanggal diambil dari komponen UTC; jam dikonversi ke instant absolut
// via offset room. end <= start berarti sesi menyeberang hari.
// Tanggal kosong atau jam rusak = tutup.
func IsSingleSessionWindowOpen(cfg Config, room *model.PrayerRoomModel, now time.Time) bool {
	if room.PrayerRoomDate == nil {
		return false
	}
	startMin, okStart := ParseMinuteOfDay(room.PrayerRoomStartTime)
	endMin, okEnd := ParseMinuteOfDay(room.PrayerRoomEndTime)
	if !okStart || !okEnd {
		return false
	}

	offset := time.Duration(cfg.offsetMinutes(room)) * time.Minute
	y, m, d := room.PrayerRoomDate.UTC().Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	start := base.Add(time.Duration(startMin)*time.Minute - offset)
	end := base.Add(time.Duration(endMin)*time.Minute - offset)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return !now.Before(start) && !now.After(end)
}

// IsRoomActive: override manual menang; selain itu hanya jadwal yang
// sesuai schedule_kind yang otoritatif.
func IsRoomActive(cfg Config, room *model.PrayerRoomModel, now time.Time) bool {
	if room.PrayerRoomIsManuallyActive {
		return true
	}
	switch room.PrayerRoomScheduleKind {
	case model.ScheduleKindSingleSession:
		return IsSingleSessionWindowOpen(cfg, room, now)
	default:
		return IsRecurringWindowOpen(cfg, room, now)
	}
}

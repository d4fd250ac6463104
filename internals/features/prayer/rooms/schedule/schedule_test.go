package schedule

import (
	"testing"
	"time"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

func intPtr(v int) *int { return &v }

func recurringRoom(start, end string, offsetMin int) *model.PrayerRoomModel {
	return &model.PrayerRoomModel{
		PrayerRoomScheduleKind:      model.ScheduleKindRecurringDaily,
		PrayerRoomStartTime:         start,
		PrayerRoomEndTime:           end,
		PrayerRoomTimezoneOffsetMin: intPtr(offsetMin),
	}
}

func TestParseMinuteOfDay(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:00", 0, true},
		{"05:30", 330, true},
		{"23:59", 1439, true},
		{" 07:15 ", 435, true},
		{"", 0, false},
		{"5", 0, false},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"ab:cd", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseMinuteOfDay(tc.in)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Errorf("ParseMinuteOfDay(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestIsRecurringWindowOpen(t *testing.T) {
	cfg := Config{DefaultTimezoneOffsetMinutes: 0}

	t.Run("simple window inclusive bounds", func(t *testing.T) {
		room := recurringRoom("05:00", "05:30", 0)
		at := func(h, m int) time.Time {
			return time.Date(2026, time.March, 10, h, m, 0, 0, time.UTC)
		}
		if !IsRecurringWindowOpen(cfg, room, at(5, 0)) {
			t.Error("expected open at start bound")
		}
		if !IsRecurringWindowOpen(cfg, room, at(5, 30)) {
			t.Error("expected open at end bound")
		}
		if !IsRecurringWindowOpen(cfg, room, at(5, 10)) {
			t.Error("expected open inside window")
		}
		if IsRecurringWindowOpen(cfg, room, at(4, 59)) {
			t.Error("expected closed before start")
		}
		if IsRecurringWindowOpen(cfg, room, at(5, 31)) {
			t.Error("expected closed after end")
		}
	})

	t.Run("window wrapping midnight", func(t *testing.T) {
		room := recurringRoom("23:00", "01:00", 0)
		at := func(h, m int) time.Time {
			return time.Date(2026, time.March, 10, h, m, 0, 0, time.UTC)
		}
		if !IsRecurringWindowOpen(cfg, room, at(23, 30)) {
			t.Error("expected open at 23:30")
		}
		if !IsRecurringWindowOpen(cfg, room, at(0, 30)) {
			t.Error("expected open at 00:30")
		}
		if IsRecurringWindowOpen(cfg, room, at(12, 0)) {
			t.Error("expected closed at noon")
		}
	})

	t.Run("timezone offset shifts the window", func(t *testing.T) {
		// 05:00-05:30 waktu lokal UTC+7 == 22:00-22:30 UTC hari sebelumnya
		room := recurringRoom("05:00", "05:30", 7*60)
		open := time.Date(2026, time.March, 9, 22, 10, 0, 0, time.UTC)
		closed := time.Date(2026, time.March, 10, 5, 10, 0, 0, time.UTC)
		if !IsRecurringWindowOpen(cfg, room, open) {
			t.Error("expected open at 22:10 UTC (05:10 local)")
		}
		if IsRecurringWindowOpen(cfg, room, closed) {
			t.Error("expected closed at 05:10 UTC (12:10 local)")
		}
	})

	t.Run("default offset from config", func(t *testing.T) {
		room := recurringRoom("05:00", "05:30", 0)
		room.PrayerRoomTimezoneOffsetMin = nil
		cfgWIB := Config{DefaultTimezoneOffsetMinutes: 7 * 60}
		open := time.Date(2026, time.March, 9, 22, 10, 0, 0, time.UTC)
		if !IsRecurringWindowOpen(cfgWIB, room, open) {
			t.Error("expected default offset applied when room offset unset")
		}
	})

	t.Run("degenerate and missing bounds", func(t *testing.T) {
		noon := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
		if !IsRecurringWindowOpen(cfg, recurringRoom("09:00", "09:00", 0), noon) {
			t.Error("start == end: expected always open")
		}
		if !IsRecurringWindowOpen(cfg, recurringRoom("", "", 0), noon) {
			t.Error("both bounds missing: expected always open")
		}
		if IsRecurringWindowOpen(cfg, recurringRoom("09:00", "", 0), noon) {
			t.Error("one bound missing: expected closed")
		}
		if IsRecurringWindowOpen(cfg, recurringRoom("bogus", "10:00", 0), noon) {
			t.Error("unparseable start: expected closed")
		}
	})
}

func TestIsSingleSessionWindowOpen(t *testing.T) {
	cfg := Config{DefaultTimezoneOffsetMinutes: 0}
	date := time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC)

	singleRoom := func(start, end string, offsetMin int) *model.PrayerRoomModel {
		d := date
		return &model.PrayerRoomModel{
			PrayerRoomScheduleKind:      model.ScheduleKindSingleSession,
			PrayerRoomDate:              &d,
			PrayerRoomStartTime:         start,
			PrayerRoomEndTime:           end,
			PrayerRoomTimezoneOffsetMin: intPtr(offsetMin),
		}
	}

	t.Run("same-day session", func(t *testing.T) {
		room := singleRoom("19:00", "21:00", 0)
		if !IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 5, 20, 0, 0, 0, time.UTC)) {
			t.Error("expected open inside session")
		}
		if IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 5, 18, 59, 0, 0, time.UTC)) {
			t.Error("expected closed before session")
		}
		if IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 6, 20, 0, 0, 0, time.UTC)) {
			t.Error("expected closed on the wrong date")
		}
	})

	t.Run("overnight session end pushed to next day", func(t *testing.T) {
		// 22:00-02:00 pada tanggal D: masih buka jam 01:00 tanggal D+1
		room := singleRoom("22:00", "02:00", 0)
		if !IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 6, 1, 0, 0, 0, time.UTC)) {
			t.Error("expected open at 01:00 the following day")
		}
		if !IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 5, 23, 0, 0, 0, time.UTC)) {
			t.Error("expected open at 23:00 on the session date")
		}
		if IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 6, 2, 1, 0, 0, time.UTC)) {
			t.Error("expected closed after the adjusted end")
		}
	})

	t.Run("offset converts wall clock to absolute instants", func(t *testing.T) {
		// 19:00-21:00 waktu UTC+7 == 12:00-14:00 UTC
		room := singleRoom("19:00", "21:00", 7*60)
		if !IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 5, 13, 0, 0, 0, time.UTC)) {
			t.Error("expected open at 13:00 UTC")
		}
		if IsSingleSessionWindowOpen(cfg, room, time.Date(2026, time.April, 5, 20, 0, 0, 0, time.UTC)) {
			t.Error("expected closed at 20:00 UTC")
		}
	})

	t.Run("fails closed on bad input", func(t *testing.T) {
		now := time.Date(2026, time.April, 5, 20, 0, 0, 0, time.UTC)
		noDate := singleRoom("19:00", "21:00", 0)
		noDate.PrayerRoomDate = nil
		if IsSingleSessionWindowOpen(cfg, noDate, now) {
			t.Error("missing date: expected closed")
		}
		if IsSingleSessionWindowOpen(cfg, singleRoom("", "21:00", 0), now) {
			t.Error("missing start: expected closed")
		}
		if IsSingleSessionWindowOpen(cfg, singleRoom("19:00", "x", 0), now) {
			t.Error("unparseable end: expected closed")
		}
	})
}

func TestIsRoomActive(t *testing.T) {
	cfg := Config{DefaultTimezoneOffsetMinutes: 0}
	noon := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("manual override wins", func(t *testing.T) {
		room := recurringRoom("05:00", "05:30", 0)
		room.PrayerRoomIsManuallyActive = true
		if !IsRoomActive(cfg, room, noon) {
			t.Error("expected manually active room to be active outside its window")
		}
	})

	t.Run("dispatches by schedule kind", func(t *testing.T) {
		// Jadwal recurring cocok tapi kind = single_session tanpa tanggal → tutup
		room := recurringRoom("11:00", "13:00", 0)
		room.PrayerRoomScheduleKind = model.ScheduleKindSingleSession
		if IsRoomActive(cfg, room, noon) {
			t.Error("single_session room without date must not fall back to recurring window")
		}

		room.PrayerRoomScheduleKind = model.ScheduleKindRecurringDaily
		if !IsRoomActive(cfg, room, noon) {
			t.Error("recurring room inside window must be active")
		}
	})
}

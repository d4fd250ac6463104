package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/prayer/rooms/model"
	"gerejaku_backend/internals/features/prayer/rooms/schedule"
)

func alwaysOpenRoom(autoRecord bool) *model.PrayerRoomModel {
	room := recordRoom(autoRecord)
	room.PrayerRoomIsManuallyActive = true
	return room
}

func newSessionAccess(store *fakeStore, issuer CredentialIssuer) *SessionAccess {
	return NewSessionAccess(store, NewRecorderElection(store), issuer, SessionAccessConfig{
		Schedule:  schedule.Config{DefaultTimezoneOffsetMinutes: 0},
		ServerURL: "wss://media.example.com",
	})
}

func TestJoinRoomNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newSessionAccess(store, &fakeIssuer{cred: "cred"})

	_, err := svc.JoinRoom(context.Background(), uuid.New(), uuid.New(), "Ana")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestJoinRoomUnauthorized(t *testing.T) {
	room := alwaysOpenRoom(true)
	store := newFakeStore(room)
	svc := newSessionAccess(store, &fakeIssuer{cred: "cred"})

	_, err := svc.JoinRoom(context.Background(), room.PrayerRoomID, uuid.Nil, "Ana")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestJoinRoomNotActive(t *testing.T) {
	room := recordRoom(true)
	room.PrayerRoomScheduleKind = model.ScheduleKindRecurringDaily
	room.PrayerRoomStartTime = "05:00"
	room.PrayerRoomEndTime = "05:30"
	store := newFakeStore(room)
	issuer := &fakeIssuer{cred: "cred"}
	svc := newSessionAccess(store, issuer)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}

	_, err := svc.JoinRoom(context.Background(), room.PrayerRoomID, uuid.New(), "Ana")
	if !errors.Is(err, ErrRoomNotActive) {
		t.Errorf("err = %v, want ErrRoomNotActive", err)
	}
	if issuer.lastChannel != "" {
		t.Error("no credential may be requested for an inactive room")
	}
	if store.claimCalls != 0 {
		t.Error("schedule check must run before any recording logic")
	}
}

func TestJoinRoomSuccessWithRecorder(t *testing.T) {
	room := alwaysOpenRoom(true)
	store := newFakeStore(room)
	issuer := &fakeIssuer{cred: "media-credential"}
	svc := newSessionAccess(store, issuer)
	userID := uuid.New()

	res, err := svc.JoinRoom(context.Background(), room.PrayerRoomID, userID, "Ana")
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if res.MediaCredential != "media-credential" {
		t.Errorf("credential = %q", res.MediaCredential)
	}
	if res.ServerURL != "wss://media.example.com" {
		t.Errorf("server url = %q", res.ServerURL)
	}
	if res.RoomChannelID != room.PrayerRoomChannelID {
		t.Error("expected channel id, not the room database id")
	}
	if !res.Recording.ShouldRecord || res.Recording.Token == "" {
		t.Errorf("expected recorder claim, got %+v", res.Recording)
	}
	if issuer.lastIdentity != userID.String() {
		t.Errorf("issuer identity = %q, want user id", issuer.lastIdentity)
	}
}

func TestJoinRoomElectionFailureIsSwallowed(t *testing.T) {
	room := alwaysOpenRoom(true)
	store := newFakeStore(room)
	store.failClaim = errors.New("db down")
	svc := newSessionAccess(store, &fakeIssuer{cred: "cred"})

	res, err := svc.JoinRoom(context.Background(), room.PrayerRoomID, uuid.New(), "Ana")
	if err != nil {
		t.Fatalf("join must succeed even when recording cannot be arranged: %v", err)
	}
	if res.Recording.ShouldRecord {
		t.Error("expected shouldRecord=false when election errors")
	}
	if res.MediaCredential == "" {
		t.Error("expected media credential despite election failure")
	}
}

func TestJoinRoomUpstreamUnavailable(t *testing.T) {
	room := alwaysOpenRoom(false)
	store := newFakeStore(room)

	t.Run("issuer error", func(t *testing.T) {
		svc := newSessionAccess(store, &fakeIssuer{err: errors.New("conferencing down")})
		_, err := svc.JoinRoom(context.Background(), room.PrayerRoomID, uuid.New(), "Ana")
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
		}
	})

	t.Run("empty credential", func(t *testing.T) {
		svc := newSessionAccess(store, &fakeIssuer{cred: "   "})
		_, err := svc.JoinRoom(context.Background(), room.PrayerRoomID, uuid.New(), "Ana")
		if !errors.Is(err, ErrUpstreamUnavailable) {
			t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
		}
	})
}

// Skenario ujung-ke-ujung: room recurring 05:00-05:30 UTC, jam 05:10.
// A join → recorder + T1; B join → bukan recorder; A cancel T1;
// C join → recorder + T2 baru.
func TestJoinRecordCancelRejoinScenario(t *testing.T) {
	room := recordRoom(true)
	room.PrayerRoomScheduleKind = model.ScheduleKindRecurringDaily
	room.PrayerRoomStartTime = "05:00"
	room.PrayerRoomEndTime = "05:30"
	zero := 0
	room.PrayerRoomTimezoneOffsetMin = &zero

	store := newFakeStore(room)
	svc := newSessionAccess(store, &fakeIssuer{cred: "cred"})
	at := time.Date(2026, time.March, 10, 5, 10, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	ctx := context.Background()
	userA, userB, userC := uuid.New(), uuid.New(), uuid.New()

	resA, err := svc.JoinRoom(ctx, room.PrayerRoomID, userA, "A")
	if err != nil || !resA.Recording.ShouldRecord {
		t.Fatalf("A join: res=%+v err=%v", resA, err)
	}
	t1 := resA.Recording.Token

	resB, err := svc.JoinRoom(ctx, room.PrayerRoomID, userB, "B")
	if err != nil {
		t.Fatalf("B join failed: %v", err)
	}
	if resB.Recording.ShouldRecord {
		t.Fatal("B must not become recorder while A holds the slot")
	}
	if resB.MediaCredential == "" {
		t.Fatal("B must still receive a media credential")
	}

	ingest := NewRecordingIngest(store, &fakeBlobs{})
	out, err := ingest.Submit(ctx, SubmitInput{
		RoomID:     room.PrayerRoomID,
		Token:      t1,
		Intent:     IntentCancel,
		UploadedBy: userA,
	})
	if err != nil || !out.Cancelled {
		t.Fatalf("A cancel: out=%+v err=%v", out, err)
	}

	stored, _ := store.GetRoom(ctx, room.PrayerRoomID)
	if stored.PrayerRoomRecordingStatus != model.RecordingStatusIdle {
		t.Fatal("lifecycle must be idle after cancel")
	}
	if len(stored.PrayerRoomRecordings) != 0 {
		t.Fatal("cancel must not create archive entries")
	}

	resC, err := svc.JoinRoom(ctx, room.PrayerRoomID, userC, "C")
	if err != nil || !resC.Recording.ShouldRecord {
		t.Fatalf("C join: res=%+v err=%v", resC, err)
	}
	if resC.Recording.Token == t1 {
		t.Error("C must receive a fresh token, not the cancelled one")
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

// claimedRoom: room dengan slot recorder sudah terklaim; mengembalikan
// store, room id, dan token aktif.
func claimedRoom(t *testing.T) (*fakeStore, uuid.UUID, string) {
	t.Helper()
	room := recordRoom(true)
	store := newFakeStore(room)
	res, err := NewRecorderElection(store).TryClaim(context.Background(), room, uuid.New())
	if err != nil || !res.ShouldRecord {
		t.Fatalf("setup claim: res=%+v err=%v", res, err)
	}
	return store, room.PrayerRoomID, res.Token
}

func TestSubmitRoomNotFound(t *testing.T) {
	ingest := NewRecordingIngest(newFakeStore(), &fakeBlobs{})
	_, err := ingest.Submit(context.Background(), SubmitInput{RoomID: uuid.New(), Token: "x"})
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestSubmitInvalidToken(t *testing.T) {
	store, roomID, _ := claimedRoom(t)
	ingest := NewRecordingIngest(store, &fakeBlobs{})

	for _, token := range []string{"", "wrong-token"} {
		_, err := ingest.Submit(context.Background(), SubmitInput{
			RoomID: roomID,
			Token:  token,
			Intent: IntentUpload,
		})
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token=%q: err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestSubmitCancelResetsWithoutEntry(t *testing.T) {
	store, roomID, token := claimedRoom(t)
	ingest := NewRecordingIngest(store, &fakeBlobs{})

	out, err := ingest.Submit(context.Background(), SubmitInput{
		RoomID: roomID,
		Token:  token,
		Intent: IntentCancel,
	})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !out.Cancelled || out.Entry != nil {
		t.Errorf("out = %+v, want cancelled without entry", out)
	}

	stored, _ := store.GetRoom(context.Background(), roomID)
	if stored.PrayerRoomRecordingStatus != model.RecordingStatusIdle || stored.PrayerRoomRecordingToken != nil {
		t.Error("cancel must reset lifecycle to idle")
	}
	if len(stored.PrayerRoomRecordings) != 0 {
		t.Error("cancel must not touch the archive")
	}
}

func TestSubmitUploadMissingPayload(t *testing.T) {
	store, roomID, token := claimedRoom(t)
	ingest := NewRecordingIngest(store, &fakeBlobs{})

	_, err := ingest.Submit(context.Background(), SubmitInput{
		RoomID: roomID,
		Token:  token,
		Intent: IntentUpload,
	})
	if !errors.Is(err, ErrMissingPayload) {
		t.Errorf("err = %v, want ErrMissingPayload", err)
	}

	stored, _ := store.GetRoom(context.Background(), roomID)
	if stored.PrayerRoomRecordingToken == nil {
		t.Error("missing payload must leave the claim intact")
	}
}

func TestSubmitUploadSuccess(t *testing.T) {
	store, roomID, token := claimedRoom(t)
	blobs := &fakeBlobs{}
	ingest := NewRecordingIngest(store, blobs)
	at := time.Date(2026, time.March, 10, 6, 0, 0, 0, time.UTC)
	ingest.now = func() time.Time { return at }
	uploader := uuid.New()

	payload := strings.NewReader("opus-audio-bytes")
	out, err := ingest.Submit(context.Background(), SubmitInput{
		RoomID:      roomID,
		Token:       token,
		Intent:      IntentUpload,
		UploadedBy:  uploader,
		Payload:     payload,
		PayloadSize: int64(payload.Len()),
		ContentType: "audio/webm",
		FileExt:     ".webm",
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if out.Cancelled || out.Entry == nil {
		t.Fatalf("out = %+v, want entry", out)
	}
	if out.Entry.UploadedBy != uploader {
		t.Error("entry must carry the uploader id")
	}
	if out.Entry.EndedAt == nil || !out.Entry.EndedAt.Equal(at) {
		t.Errorf("endedAt = %v, want ingest time fallback %v", out.Entry.EndedAt, at)
	}
	if !strings.HasSuffix(blobs.lastKey, ".webm") || !strings.Contains(blobs.lastKey, "/recordings/") {
		t.Errorf("object key = %q", blobs.lastKey)
	}

	stored, _ := store.GetRoom(context.Background(), roomID)
	if stored.PrayerRoomRecordingStatus != model.RecordingStatusIdle || stored.PrayerRoomRecordingToken != nil {
		t.Error("successful upload must reset lifecycle to idle")
	}
	entries, err := stored.DecodeRecordings()
	if err != nil || len(entries) != 1 {
		t.Fatalf("archive entries = %v (err=%v), want 1", entries, err)
	}
	if entries[0].URL != out.Entry.URL {
		t.Error("archived entry does not match returned entry")
	}
}

func TestSubmitUploadPrependsNewestFirst(t *testing.T) {
	store, roomID, token := claimedRoom(t)
	ingest := NewRecordingIngest(store, &fakeBlobs{})
	ctx := context.Background()

	// Arsip lama sudah punya satu entry.
	old := model.RecordingEntry{URL: "https://cdn.example.com/old", UploadedBy: uuid.New()}
	encoded, _ := model.EncodeRecordings([]model.RecordingEntry{old})
	store.mu.Lock()
	store.rooms[roomID].PrayerRoomRecordings = encoded
	store.mu.Unlock()

	payload := strings.NewReader("bytes")
	if _, err := ingest.Submit(ctx, SubmitInput{
		RoomID:      roomID,
		Token:       token,
		Intent:      IntentUpload,
		UploadedBy:  uuid.New(),
		Payload:     payload,
		PayloadSize: int64(payload.Len()),
	}); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	stored, _ := store.GetRoom(ctx, roomID)
	entries, _ := stored.DecodeRecordings()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[1].URL != old.URL {
		t.Error("existing entry must stay behind the new one")
	}
	if entries[0].URL == old.URL {
		t.Error("new entry must be first")
	}
}

func TestSubmitUploadStorageFailureKeepsToken(t *testing.T) {
	store, roomID, token := claimedRoom(t)
	blobs := &fakeBlobs{err: errStorageDown}
	ingest := NewRecordingIngest(store, blobs)
	ctx := context.Background()

	payload := strings.NewReader("bytes")
	_, err := ingest.Submit(ctx, SubmitInput{
		RoomID:      roomID,
		Token:       token,
		Intent:      IntentUpload,
		UploadedBy:  uuid.New(),
		Payload:     payload,
		PayloadSize: int64(payload.Len()),
	})
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}

	stored, _ := store.GetRoom(ctx, roomID)
	if stored.PrayerRoomRecordingStatus != model.RecordingStatusRecording {
		t.Fatal("failed upload must leave lifecycle recording for retry")
	}
	if stored.PrayerRoomRecordingToken == nil || *stored.PrayerRoomRecordingToken != token {
		t.Fatal("failed upload must keep the token valid")
	}

	// Retry dengan token yang sama harus sukses.
	blobs.err = nil
	retry := strings.NewReader("bytes")
	out, err := ingest.Submit(ctx, SubmitInput{
		RoomID:      roomID,
		Token:       token,
		Intent:      IntentUpload,
		UploadedBy:  uuid.New(),
		Payload:     retry,
		PayloadSize: int64(retry.Len()),
	})
	if err != nil || out.Entry == nil {
		t.Fatalf("retry failed: out=%+v err=%v", out, err)
	}
}

func TestSubmitReplayRejected(t *testing.T) {
	store, roomID, token := claimedRoom(t)
	ingest := NewRecordingIngest(store, &fakeBlobs{})
	ctx := context.Background()

	payload := strings.NewReader("bytes")
	if _, err := ingest.Submit(ctx, SubmitInput{
		RoomID:      roomID,
		Token:       token,
		Intent:      IntentUpload,
		UploadedBy:  uuid.New(),
		Payload:     payload,
		PayloadSize: int64(payload.Len()),
	}); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}

	// Token sudah dikonsumsi; pemakaian ulang harus ditolak.
	replay := strings.NewReader("bytes")
	_, err := ingest.Submit(ctx, SubmitInput{
		RoomID:      roomID,
		Token:       token,
		Intent:      IntentUpload,
		UploadedBy:  uuid.New(),
		Payload:     replay,
		PayloadSize: int64(replay.Len()),
	})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("replay err = %v, want ErrInvalidToken", err)
	}
}

func TestSubmitDurationPreference(t *testing.T) {
	caller := int64(90_000)
	provider := int64(85_000)
	zero := int64(0)

	cases := []struct {
		name     string
		caller   *int64
		provider *int64
		want     *int64
	}{
		{"caller wins over provider", &caller, &provider, &caller},
		{"provider when caller missing", nil, &provider, &provider},
		{"provider when caller zero", &zero, &provider, &provider},
		{"nil when both missing", nil, nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, roomID, token := claimedRoom(t)
			ingest := NewRecordingIngest(store, &fakeBlobs{providerDuration: tc.provider})

			payload := strings.NewReader("bytes")
			out, err := ingest.Submit(context.Background(), SubmitInput{
				RoomID:         roomID,
				Token:          token,
				Intent:         IntentUpload,
				UploadedBy:     uuid.New(),
				Payload:        payload,
				PayloadSize:    int64(payload.Len()),
				DurationMillis: tc.caller,
			})
			if err != nil {
				t.Fatalf("upload failed: %v", err)
			}
			switch {
			case tc.want == nil && out.Entry.DurationMillis != nil:
				t.Errorf("duration = %d, want nil", *out.Entry.DurationMillis)
			case tc.want != nil && (out.Entry.DurationMillis == nil || *out.Entry.DurationMillis != *tc.want):
				t.Errorf("duration = %v, want %d", out.Entry.DurationMillis, *tc.want)
			}
		})
	}
}

func TestSubmitClientTimestampsPreferred(t *testing.T) {
	store, roomID, token := claimedRoom(t)
	ingest := NewRecordingIngest(store, &fakeBlobs{})
	startedAt := time.Date(2026, time.March, 10, 5, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(25 * time.Minute)

	payload := strings.NewReader("bytes")
	out, err := ingest.Submit(context.Background(), SubmitInput{
		RoomID:      roomID,
		Token:       token,
		Intent:      IntentUpload,
		UploadedBy:  uuid.New(),
		Payload:     payload,
		PayloadSize: int64(payload.Len()),
		StartedAt:   &startedAt,
		EndedAt:     &endedAt,
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if out.Entry.StartedAt == nil || !out.Entry.StartedAt.Equal(startedAt) {
		t.Errorf("startedAt = %v, want client value", out.Entry.StartedAt)
	}
	if out.Entry.EndedAt == nil || !out.Entry.EndedAt.Equal(endedAt) {
		t.Errorf("endedAt = %v, want client value", out.Entry.EndedAt)
	}
}

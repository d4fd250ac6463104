package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

func recordRoom(autoRecord bool) *model.PrayerRoomModel {
	return &model.PrayerRoomModel{
		PrayerRoomID:              uuid.New(),
		PrayerRoomChannelID:       "prayer-" + uuid.NewString(),
		PrayerRoomAutoRecordAudio: autoRecord,
		PrayerRoomRecordingStatus: model.RecordingStatusIdle,
	}
}

func TestTryClaimAutoRecordDisabled(t *testing.T) {
	room := recordRoom(false)
	store := newFakeStore(room)
	election := NewRecorderElection(store)

	res, err := election.TryClaim(context.Background(), room, uuid.New())
	if err != nil {
		t.Fatalf("TryClaim failed: %v", err)
	}
	if res.ShouldRecord {
		t.Error("expected no recorder for room with auto record disabled")
	}
	if store.claimCalls != 0 {
		t.Errorf("expected no store writes, got %d claim calls", store.claimCalls)
	}
}

func TestTryClaimFreshRoom(t *testing.T) {
	room := recordRoom(true)
	store := newFakeStore(room)
	election := NewRecorderElection(store)
	userID := uuid.New()

	res, err := election.TryClaim(context.Background(), room, userID)
	if err != nil {
		t.Fatalf("TryClaim failed: %v", err)
	}
	if !res.ShouldRecord {
		t.Fatal("expected claim to succeed on idle room")
	}
	if res.Token == "" {
		t.Error("expected non-empty token")
	}
	if res.Resumed {
		t.Error("fresh claim must not be marked resumed")
	}
	if res.StartedAt == nil {
		t.Error("expected startedAt to be set")
	}

	stored, _ := store.GetRoom(context.Background(), room.PrayerRoomID)
	if stored.PrayerRoomRecordingStatus != model.RecordingStatusRecording {
		t.Errorf("store status = %q, want recording", stored.PrayerRoomRecordingStatus)
	}
	if stored.PrayerRoomRecordingToken == nil || *stored.PrayerRoomRecordingToken != res.Token {
		t.Error("store token does not match returned token")
	}
	if stored.PrayerRoomRecordingHolderUserID == nil || *stored.PrayerRoomRecordingHolderUserID != userID {
		t.Error("store holder does not match claiming user")
	}
}

func TestTryClaimIdempotentForHolder(t *testing.T) {
	room := recordRoom(true)
	store := newFakeStore(room)
	election := NewRecorderElection(store)
	userID := uuid.New()
	ctx := context.Background()

	first, err := election.TryClaim(ctx, room, userID)
	if err != nil || !first.ShouldRecord {
		t.Fatalf("initial claim failed: res=%+v err=%v", first, err)
	}
	writesAfterFirst := store.claimCalls

	// Reconnect: snapshot segar dari store, user yang sama.
	snapshot, _ := store.GetRoom(ctx, room.PrayerRoomID)
	second, err := election.TryClaim(ctx, snapshot, userID)
	if err != nil {
		t.Fatalf("resume claim failed: %v", err)
	}
	if !second.ShouldRecord || !second.Resumed {
		t.Fatalf("expected resumed claim, got %+v", second)
	}
	if second.Token != first.Token {
		t.Errorf("resume returned token %q, want original %q", second.Token, first.Token)
	}
	if store.claimCalls != writesAfterFirst {
		t.Error("resume must not issue additional lifecycle writes")
	}
}

func TestTryClaimContention(t *testing.T) {
	room := recordRoom(true)
	store := newFakeStore(room)
	election := NewRecorderElection(store)
	ctx := context.Background()

	holder := uuid.New()
	if res, _ := election.TryClaim(ctx, room, holder); !res.ShouldRecord {
		t.Fatal("setup claim failed")
	}

	snapshot, _ := store.GetRoom(ctx, room.PrayerRoomID)
	res, err := election.TryClaim(ctx, snapshot, uuid.New())
	if err != nil {
		t.Fatalf("TryClaim failed: %v", err)
	}
	if res.ShouldRecord {
		t.Error("second user must not win while slot is held and fresh")
	}
}

func TestTryClaimStaleRecovery(t *testing.T) {
	room := recordRoom(true)
	staleToken := "stale-token"
	staleHolder := uuid.New()
	staleStart := time.Now().Add(-5 * time.Hour)
	room.PrayerRoomRecordingStatus = model.RecordingStatusRecording
	room.PrayerRoomRecordingToken = &staleToken
	room.PrayerRoomRecordingHolderUserID = &staleHolder
	room.PrayerRoomRecordingStartedAt = &staleStart

	store := newFakeStore(room)
	election := NewRecorderElection(store)

	newUser := uuid.New()
	res, err := election.TryClaim(context.Background(), room, newUser)
	if err != nil {
		t.Fatalf("TryClaim failed: %v", err)
	}
	if !res.ShouldRecord {
		t.Fatal("expected stale slot to be reclaimable")
	}
	if res.Token == staleToken {
		t.Error("reclaim must mint a fresh token")
	}
	if store.resetCalls == 0 {
		t.Error("expected stale lifecycle to be reset before claiming")
	}

	stored, _ := store.GetRoom(context.Background(), room.PrayerRoomID)
	if stored.PrayerRoomRecordingHolderUserID == nil || *stored.PrayerRoomRecordingHolderUserID != newUser {
		t.Error("expected new user to hold the slot after stale recovery")
	}
}

func TestTryClaimLosesCASRace(t *testing.T) {
	room := recordRoom(true)
	store := newFakeStore(room)
	election := NewRecorderElection(store)
	ctx := context.Background()

	// Snapshot diambil saat room masih idle...
	snapshot, _ := store.GetRoom(ctx, room.PrayerRoomID)

	// ...lalu user lain keburu klaim di antara read dan write.
	if res, _ := election.TryClaim(ctx, room, uuid.New()); !res.ShouldRecord {
		t.Fatal("setup claim failed")
	}

	res, err := election.TryClaim(ctx, snapshot, uuid.New())
	if err != nil {
		t.Fatalf("TryClaim failed: %v", err)
	}
	if res.ShouldRecord {
		t.Error("claim against a stale idle snapshot must lose the CAS race")
	}
}

func TestTryClaimMutualExclusionConcurrent(t *testing.T) {
	room := recordRoom(true)
	store := newFakeStore(room)
	election := NewRecorderElection(store)
	ctx := context.Background()

	const joiners = 8
	var wg sync.WaitGroup
	results := make([]ClaimResult, joiners)

	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshot, _ := store.GetRoom(ctx, room.PrayerRoomID)
			res, err := election.TryClaim(ctx, snapshot, uuid.New())
			if err != nil {
				t.Errorf("TryClaim failed: %v", err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, r := range results {
		if r.ShouldRecord {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("expected exactly one recorder, got %d", winners)
	}
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

// ClaimResult: keputusan pemilihan recorder untuk satu join.
type ClaimResult struct {
	ShouldRecord bool       `json:"should_record"`
	Token        string     `json:"token,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	Resumed      bool       `json:"resumed,omitempty"`
}

// RecorderElection memilih paling banyak SATU recorder audio per room.
// Koordinasi antar request sepenuhnya lewat CAS di LifecycleStore;
// tidak ada state in-process.
type RecorderElection struct {
	store LifecycleStore
	now   func() time.Time
}

func NewRecorderElection(store LifecycleStore) *RecorderElection {
	return &RecorderElection{store: store, now: time.Now}
}

// TryClaim memutuskan apakah userID menjadi recorder room ini.
// Urutan: resume holder lama → reset klaim basi → kalah kontentsi → klaim CAS.
func (e *RecorderElection) TryClaim(ctx context.Context, room *model.PrayerRoomModel, userID uuid.UUID) (ClaimResult, error) {
	if !room.PrayerRoomAutoRecordAudio {
		return ClaimResult{}, nil
	}

	now := e.now()

	held := room.PrayerRoomRecordingStatus == model.RecordingStatusRecording &&
		room.PrayerRoomRecordingToken != nil && *room.PrayerRoomRecordingToken != ""

	if held {
		// Resume: holder yang sama reconnect → token lama, tanpa mutasi.
		if room.PrayerRoomRecordingHolderUserID != nil && *room.PrayerRoomRecordingHolderUserID == userID {
			return ClaimResult{
				ShouldRecord: true,
				Token:        *room.PrayerRoomRecordingToken,
				StartedAt:    room.PrayerRoomRecordingStartedAt,
				Resumed:      true,
			}, nil
		}

		// Klaim basi (holder hilang tanpa upload): reset dulu, lalu coba klaim.
		stale := room.PrayerRoomRecordingStartedAt == nil ||
			now.Sub(*room.PrayerRoomRecordingStartedAt) > MaxRecordingWindow
		if !stale {
			// Orang lain masih pegang slot.
			return ClaimResult{}, nil
		}
		if err := e.store.ResetToIdle(ctx, room.PrayerRoomID); err != nil {
			return ClaimResult{}, err
		}
	}

	token := newRecordingToken()
	claimed, err := e.store.ClaimIfIdle(ctx, room.PrayerRoomID, token, userID, now)
	if err != nil {
		return ClaimResult{}, err
	}
	if !claimed {
		// Kalah balapan dengan joiner lain di antara read dan write.
		return ClaimResult{}, nil
	}
	return ClaimResult{ShouldRecord: true, Token: token, StartedAt: &now}, nil
}

func newRecordingToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

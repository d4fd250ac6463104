package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

// Intent submit rekaman
const (
	IntentUpload = "upload"
	IntentCancel = "cancel"
)

// SubmitInput: satu panggilan upload/cancel dari client recorder.
type SubmitInput struct {
	RoomID     uuid.UUID
	Token      string
	Intent     string // IntentUpload (default) | IntentCancel
	UploadedBy uuid.UUID

	// Payload audio; wajib untuk intent upload.
	Payload     io.Reader
	PayloadSize int64
	ContentType string
	FileExt     string // contoh ".webm"; default dipakai bila kosong

	// Metadata dari client; semua opsional.
	StartedAt      *time.Time
	EndedAt        *time.Time
	DurationMillis *int64
}

// SubmitResult: Cancelled true (tanpa entry) ATAU Entry terisi.
type SubmitResult struct {
	Cancelled bool
	Entry     *model.RecordingEntry
}

// RecordingIngest menerima blob audio + capability token, menaruhnya di
// durable storage, menambahkan entry arsip, dan mengembalikan lifecycle
// ke idle. Validasi selalu lewat token, bukan lock.
type RecordingIngest struct {
	store LifecycleStore
	blobs BlobStorage
	now   func() time.Time
}

func NewRecordingIngest(store LifecycleStore, blobs BlobStorage) *RecordingIngest {
	return &RecordingIngest{store: store, blobs: blobs, now: time.Now}
}

// Submit memproses upload atau cancel.
// Asimetri yang disengaja: sukses upload me-reset lifecycle; GAGAL upload
// ke storage membiarkan lifecycle tetap recording supaya token masih
// valid untuk retry.
func (s *RecordingIngest) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	room, err := s.store.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}

	current := room.PrayerRoomRecordingToken
	if in.Token == "" || current == nil || *current == "" || in.Token != *current {
		return nil, ErrInvalidToken
	}

	if in.Intent == IntentCancel {
		ok, err := s.store.ResetIfTokenMatches(ctx, in.RoomID, in.Token)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Token keburu digantikan di antara read dan write.
			return nil, ErrInvalidToken
		}
		return &SubmitResult{Cancelled: true}, nil
	}

	if in.Payload == nil || in.PayloadSize <= 0 {
		return nil, ErrMissingPayload
	}

	now := s.now()

	ext := in.FileExt
	if ext == "" {
		ext = ".webm"
	}
	// Key deterministik dari (channel, timestamp) — bukan dari nama file client.
	key := fmt.Sprintf("prayer-rooms/%s/recordings/%d%s", room.PrayerRoomChannelID, now.UnixMilli(), ext)

	uploaded, err := s.blobs.UploadAudio(ctx, key, in.Payload, in.ContentType, in.PayloadSize)
	if err != nil {
		// Lifecycle dibiarkan recording: holder boleh retry dengan token sama.
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	startedAt := in.StartedAt
	if startedAt == nil {
		startedAt = room.PrayerRoomRecordingStartedAt
	}
	endedAt := in.EndedAt
	if endedAt == nil {
		endedAt = &now
	}

	var duration *int64
	switch {
	case in.DurationMillis != nil && *in.DurationMillis > 0:
		duration = in.DurationMillis
	case uploaded.DurationMillis != nil && *uploaded.DurationMillis > 0:
		duration = uploaded.DurationMillis
	}

	entry := model.RecordingEntry{
		URL:            uploaded.URL,
		StorageID:      uploaded.StorageID,
		StartedAt:      startedAt,
		EndedAt:        endedAt,
		DurationMillis: duration,
		SizeBytes:      uploaded.SizeBytes,
		StartedBy:      room.PrayerRoomRecordingHolderUserID,
		UploadedBy:     in.UploadedBy,
	}

	existing, err := room.DecodeRecordings()
	if err != nil {
		return nil, err
	}
	updated, err := model.EncodeRecordings(append([]model.RecordingEntry{entry}, existing...))
	if err != nil {
		return nil, err
	}

	ok, err := s.store.ReplaceRecordingsAndReset(ctx, in.RoomID, in.Token, updated)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidToken
	}

	return &SubmitResult{Entry: &entry}, nil
}

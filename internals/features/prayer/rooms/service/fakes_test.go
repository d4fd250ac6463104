package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"gerejaku_backend/internals/features/prayer/rooms/model"
)

// fakeStore: LifecycleStore in-memory dengan semantik CAS yang sama
// dengan implementasi GORM (klaim gagal bila slot sudah dipegang).
type fakeStore struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*model.PrayerRoomModel

	claimCalls int
	resetCalls int

	failClaim error // bila di-set, ClaimIfIdle selalu error
}

func newFakeStore(rooms ...*model.PrayerRoomModel) *fakeStore {
	s := &fakeStore{rooms: map[uuid.UUID]*model.PrayerRoomModel{}}
	for _, r := range rooms {
		s.rooms[r.PrayerRoomID] = r
	}
	return s
}

func (s *fakeStore) GetRoom(ctx context.Context, roomID uuid.UUID) (*model.PrayerRoomModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) ClaimIfIdle(ctx context.Context, roomID uuid.UUID, token string, holder uuid.UUID, startedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimCalls++
	if s.failClaim != nil {
		return false, s.failClaim
	}
	r, ok := s.rooms[roomID]
	if !ok {
		return false, nil
	}
	if r.PrayerRoomRecordingStatus == model.RecordingStatusRecording && r.PrayerRoomRecordingToken != nil {
		return false, nil
	}
	st := startedAt
	h := holder
	tok := token
	r.PrayerRoomRecordingStatus = model.RecordingStatusRecording
	r.PrayerRoomRecordingToken = &tok
	r.PrayerRoomRecordingHolderUserID = &h
	r.PrayerRoomRecordingStartedAt = &st
	return true, nil
}

func (s *fakeStore) ResetToIdle(ctx context.Context, roomID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetCalls++
	if r, ok := s.rooms[roomID]; ok {
		clearLifecycle(r)
	}
	return nil
}

func (s *fakeStore) ResetIfTokenMatches(ctx context.Context, roomID uuid.UUID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[roomID]
	if !ok || r.PrayerRoomRecordingToken == nil || *r.PrayerRoomRecordingToken != token {
		return false, nil
	}
	clearLifecycle(r)
	return true, nil
}

func (s *fakeStore) ReplaceRecordingsAndReset(ctx context.Context, roomID uuid.UUID, token string, recordings datatypes.JSON) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[roomID]
	if !ok || r.PrayerRoomRecordingToken == nil || *r.PrayerRoomRecordingToken != token {
		return false, nil
	}
	r.PrayerRoomRecordings = recordings
	clearLifecycle(r)
	return true, nil
}

func clearLifecycle(r *model.PrayerRoomModel) {
	r.PrayerRoomRecordingStatus = model.RecordingStatusIdle
	r.PrayerRoomRecordingToken = nil
	r.PrayerRoomRecordingHolderUserID = nil
	r.PrayerRoomRecordingStartedAt = nil
}

// fakeIssuer: CredentialIssuer yang selalu mengembalikan kredensial tetap.
type fakeIssuer struct {
	cred string
	err  error

	lastChannel  string
	lastIdentity string
}

func (f *fakeIssuer) IssueJoinCredential(ctx context.Context, channelID, identity, displayName string, canPublish, canSubscribe bool) (string, error) {
	f.lastChannel = channelID
	f.lastIdentity = identity
	if f.err != nil {
		return "", f.err
	}
	return f.cred, nil
}

// fakeBlobs: BlobStorage in-memory.
type fakeBlobs struct {
	err              error
	providerDuration *int64

	uploads  int
	lastKey  string
	lastSize int64
}

func (f *fakeBlobs) UploadAudio(ctx context.Context, key string, r io.Reader, contentType string, sizeBytes int64) (*BlobUploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	f.uploads++
	f.lastKey = key
	f.lastSize = sizeBytes
	return &BlobUploadResult{
		URL:            "https://cdn.example.com/" + key,
		StorageID:      key,
		SizeBytes:      sizeBytes,
		DurationMillis: f.providerDuration,
	}, nil
}

var errStorageDown = errors.New("storage down")

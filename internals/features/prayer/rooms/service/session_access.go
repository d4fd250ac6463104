package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/prayer/rooms/schedule"
)

// CredentialIssuer meminta kredensial join media dari platform conferencing.
// Core tidak pernah membaca isi kredensial — hanya cek non-empty.
type CredentialIssuer interface {
	IssueJoinCredential(ctx context.Context, channelID, identity, displayName string, canPublish, canSubscribe bool) (string, error)
}

type SessionAccessConfig struct {
	Schedule  schedule.Config
	ServerURL string // URL server conferencing yang dikirim balik ke client
}

// JoinResult: balasan join — kredensial media selalu ada bila sukses;
// Recording best-effort (bisa kosong walau room auto-record).
type JoinResult struct {
	MediaCredential string      `json:"media_credential"`
	ServerURL       string      `json:"server_url"`
	RoomChannelID   string      `json:"room_channel_id"`
	Recording       ClaimResult `json:"recording"`
}

// SessionAccess memvalidasi join terhadap jadwal lalu menerbitkan
// kredensial media + (best-effort) slot recorder.
type SessionAccess struct {
	store       LifecycleStore
	election    *RecorderElection
	credentials CredentialIssuer
	cfg         SessionAccessConfig
	now         func() time.Time
}

func NewSessionAccess(store LifecycleStore, election *RecorderElection, credentials CredentialIssuer, cfg SessionAccessConfig) *SessionAccess {
	return &SessionAccess{
		store:       store,
		election:    election,
		credentials: credentials,
		cfg:         cfg,
		now:         time.Now,
	}
}

// JoinRoom: urutan cek — room ada → identitas ada → jadwal buka →
// (best-effort) pemilihan recorder → kredensial media.
// Gagalnya pemilihan recorder TIDAK pernah menggagalkan join.
func (s *SessionAccess) JoinRoom(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, displayName string) (*JoinResult, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	if !schedule.IsRoomActive(s.cfg.Schedule, room, s.now()) {
		return nil, ErrRoomNotActive
	}

	recording, err := s.election.TryClaim(ctx, room, userID)
	if err != nil {
		// Perekaman best-effort: join tetap jalan, cukup catat.
		log.Printf("[WARN] recorder election gagal (room=%s): %v", room.PrayerRoomID, err)
		recording = ClaimResult{}
	}

	cred, err := s.credentials.IssueJoinCredential(ctx, room.PrayerRoomChannelID, userID.String(), displayName, true, true)
	if err != nil || strings.TrimSpace(cred) == "" {
		return nil, ErrUpstreamUnavailable
	}

	return &JoinResult{
		MediaCredential: cred,
		ServerURL:       s.cfg.ServerURL,
		RoomChannelID:   room.PrayerRoomChannelID,
		Recording:       recording,
	}, nil
}

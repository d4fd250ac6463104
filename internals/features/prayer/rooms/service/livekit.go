package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/livekit/protocol/auth"
)

// TTL kredensial join; sesi doa terpanjang masih di bawah ini.
const joinCredentialTTL = 6 * time.Hour

// LiveKitCredentialIssuer menerbitkan access token LiveKit yang discope
// ke satu channel (room name) saja.
type LiveKitCredentialIssuer struct {
	apiKey    string
	apiSecret string
}

func NewLiveKitCredentialIssuer(apiKey, apiSecret string) (*LiveKitCredentialIssuer, error) {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(apiSecret) == "" {
		return nil, fmt.Errorf("livekit: api key/secret kosong")
	}
	return &LiveKitCredentialIssuer{apiKey: apiKey, apiSecret: apiSecret}, nil
}

func (l *LiveKitCredentialIssuer) IssueJoinCredential(ctx context.Context, channelID, identity, displayName string, canPublish, canSubscribe bool) (string, error) {
	if strings.TrimSpace(channelID) == "" {
		return "", fmt.Errorf("livekit: channel id kosong")
	}
	if strings.TrimSpace(identity) == "" {
		return "", fmt.Errorf("livekit: identity kosong")
	}

	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     channelID,
	}
	grant.SetCanPublish(canPublish)
	grant.SetCanSubscribe(canSubscribe)

	at := auth.NewAccessToken(l.apiKey, l.apiSecret).
		AddGrant(grant).
		SetIdentity(identity).
		SetName(displayName).
		SetValidFor(joinCredentialTTL)

	return at.ToJWT()
}

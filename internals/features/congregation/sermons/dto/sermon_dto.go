package dto

import (
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/congregation/sermons/model"
)

type SermonResponse struct {
	SermonID          uuid.UUID `json:"sermon_id"`
	SermonTitle       string    `json:"sermon_title"`
	SermonSlug        string    `json:"sermon_slug"`
	SermonSpeaker     string    `json:"sermon_speaker"`
	SermonDescription string    `json:"sermon_description"`
	SermonTags        []string  `json:"sermon_tags"`

	SermonVideoURL       *string `json:"sermon_video_url,omitempty"`
	SermonAudioURL       *string `json:"sermon_audio_url,omitempty"`
	SermonPosterURL      *string `json:"sermon_poster_url,omitempty"`
	SermonPosterThumbURL *string `json:"sermon_poster_thumb_url,omitempty"`

	SermonDeliveredAt *time.Time `json:"sermon_delivered_at,omitempty"`
	SermonCreatedAt   time.Time  `json:"sermon_created_at"`
}

func ToSermonResponse(m *model.SermonModel) *SermonResponse {
	tags := []string(m.SermonTags)
	if tags == nil {
		tags = []string{}
	}
	return &SermonResponse{
		SermonID:             m.SermonID,
		SermonTitle:          m.SermonTitle,
		SermonSlug:           m.SermonSlug,
		SermonSpeaker:        m.SermonSpeaker,
		SermonDescription:    m.SermonDescription,
		SermonTags:           tags,
		SermonVideoURL:       m.SermonVideoURL,
		SermonAudioURL:       m.SermonAudioURL,
		SermonPosterURL:      m.SermonPosterURL,
		SermonPosterThumbURL: m.SermonPosterThumbURL,
		SermonDeliveredAt:    m.SermonDeliveredAt,
		SermonCreatedAt:      m.SermonCreatedAt,
	}
}

func ToSermonResponseList(items []model.SermonModel) []SermonResponse {
	out := make([]SermonResponse, len(items))
	for i := range items {
		out[i] = *ToSermonResponse(&items[i])
	}
	return out
}

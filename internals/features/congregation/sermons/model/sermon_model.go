package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type SermonModel struct {
	SermonID          uuid.UUID `gorm:"column:sermon_id;type:uuid;default:gen_random_uuid();primaryKey" json:"sermon_id"`
	SermonTitle       string    `gorm:"column:sermon_title;type:varchar(255);not null" json:"sermon_title"`
	SermonSlug        string    `gorm:"column:sermon_slug;type:varchar(100);not null;uniqueIndex:ux_sermons_slug" json:"sermon_slug"`
	SermonSpeaker     string    `gorm:"column:sermon_speaker;type:varchar(255)" json:"sermon_speaker"`
	SermonDescription string    `gorm:"column:sermon_description;type:text" json:"sermon_description"`

	SermonTags pq.StringArray `gorm:"column:sermon_tags;type:text[]" json:"sermon_tags"`

	// Media: video eksternal (YouTube dsb.), audio & poster di OSS.
	SermonVideoURL       *string `gorm:"column:sermon_video_url;type:text" json:"sermon_video_url,omitempty"`
	SermonAudioURL       *string `gorm:"column:sermon_audio_url;type:text" json:"sermon_audio_url,omitempty"`
	SermonAudioObjectKey *string `gorm:"column:sermon_audio_object_key;type:text" json:"-"`
	SermonPosterURL      *string `gorm:"column:sermon_poster_url;type:text" json:"sermon_poster_url,omitempty"`
	SermonPosterThumbURL *string `gorm:"column:sermon_poster_thumb_url;type:text" json:"sermon_poster_thumb_url,omitempty"`

	SermonDeliveredAt *time.Time `gorm:"column:sermon_delivered_at;type:date" json:"sermon_delivered_at,omitempty"`

	SermonCreatedAt time.Time      `gorm:"column:sermon_created_at;type:timestamptz;autoCreateTime" json:"sermon_created_at"`
	SermonUpdatedAt time.Time      `gorm:"column:sermon_updated_at;type:timestamptz;autoUpdateTime" json:"sermon_updated_at"`
	SermonDeletedAt gorm.DeletedAt `gorm:"column:sermon_deleted_at;type:timestamptz;index" json:"sermon_deleted_at,omitempty"`
}

func (SermonModel) TableName() string {
	return "sermons"
}

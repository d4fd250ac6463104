package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTitle       string    `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventSlug        string    `gorm:"column:event_slug;type:varchar(100);not null;uniqueIndex:ux_events_slug" json:"event_slug"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description"`
	EventLocation    string    `gorm:"column:event_location;type:varchar(255)" json:"event_location"`

	EventStartAt time.Time  `gorm:"column:event_start_at;type:timestamptz;not null" json:"event_start_at"`
	EventEndAt   *time.Time `gorm:"column:event_end_at;type:timestamptz" json:"event_end_at,omitempty"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;type:timestamptz;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string {
	return "events"
}

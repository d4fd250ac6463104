package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestimonyModel struct {
	TestimonyID       uuid.UUID `gorm:"column:testimony_id;type:uuid;default:gen_random_uuid();primaryKey" json:"testimony_id"`
	TestimonyUserID   uuid.UUID `gorm:"column:testimony_user_id;type:uuid;not null;index" json:"testimony_user_id"`
	TestimonyUserName string    `gorm:"column:testimony_user_name;type:varchar(255)" json:"testimony_user_name"`

	TestimonyTitle   string `gorm:"column:testimony_title;type:varchar(255);not null" json:"testimony_title"`
	TestimonyContent string `gorm:"column:testimony_content;type:text;not null" json:"testimony_content"`

	// Moderasi: hanya yang approved yang tampil di publik.
	TestimonyIsApproved bool       `gorm:"column:testimony_is_approved;default:false" json:"testimony_is_approved"`
	TestimonyApprovedAt *time.Time `gorm:"column:testimony_approved_at;type:timestamptz" json:"testimony_approved_at,omitempty"`

	TestimonyCreatedAt time.Time      `gorm:"column:testimony_created_at;type:timestamptz;autoCreateTime" json:"testimony_created_at"`
	TestimonyUpdatedAt time.Time      `gorm:"column:testimony_updated_at;type:timestamptz;autoUpdateTime" json:"testimony_updated_at"`
	TestimonyDeletedAt gorm.DeletedAt `gorm:"column:testimony_deleted_at;type:timestamptz;index" json:"testimony_deleted_at,omitempty"`
}

func (TestimonyModel) TableName() string {
	return "testimonies"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceTimeModel: jadwal ibadah rutin mingguan (mis. Minggu 09:00).
type ServiceTimeModel struct {
	ServiceTimeID   uuid.UUID `gorm:"column:service_time_id;type:uuid;default:gen_random_uuid();primaryKey" json:"service_time_id"`
	ServiceTimeName string    `gorm:"column:service_time_name;type:varchar(255);not null" json:"service_time_name"`

	// 0 = Minggu ... 6 = Sabtu (mengikuti time.Weekday)
	ServiceTimeDayOfWeek int    `gorm:"column:service_time_day_of_week;not null" json:"service_time_day_of_week"`
	ServiceTimeStartTime string `gorm:"column:service_time_start_time;type:varchar(5);not null" json:"service_time_start_time"` // "HH:MM"
	ServiceTimeEndTime   string `gorm:"column:service_time_end_time;type:varchar(5)" json:"service_time_end_time"`

	ServiceTimeLocation string `gorm:"column:service_time_location;type:varchar(255)" json:"service_time_location"`

	ServiceTimeCreatedAt time.Time      `gorm:"column:service_time_created_at;type:timestamptz;autoCreateTime" json:"service_time_created_at"`
	ServiceTimeUpdatedAt time.Time      `gorm:"column:service_time_updated_at;type:timestamptz;autoUpdateTime" json:"service_time_updated_at"`
	ServiceTimeDeletedAt gorm.DeletedAt `gorm:"column:service_time_deleted_at;type:timestamptz;index" json:"service_time_deleted_at,omitempty"`
}

func (ServiceTimeModel) TableName() string {
	return "service_times"
}

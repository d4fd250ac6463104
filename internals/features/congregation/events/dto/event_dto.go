package dto

import (
	"time"

	"gerejaku_backend/internals/features/congregation/events/model"
)

type CreateEventRequest struct {
	EventTitle       string  `json:"event_title" validate:"required,min=3,max=255"`
	EventDescription string  `json:"event_description" validate:"max=5000"`
	EventLocation    string  `json:"event_location" validate:"max=255"`
	EventStartAt     string  `json:"event_start_at" validate:"required"` // RFC3339
	EventEndAt       *string `json:"event_end_at"`
}

func (r *CreateEventRequest) ToModel() (*model.EventModel, error) {
	startAt, err := time.Parse(time.RFC3339, r.EventStartAt)
	if err != nil {
		return nil, err
	}
	m := &model.EventModel{
		EventTitle:       r.EventTitle,
		EventDescription: r.EventDescription,
		EventLocation:    r.EventLocation,
		EventStartAt:     startAt,
	}
	if r.EventEndAt != nil && *r.EventEndAt != "" {
		endAt, err := time.Parse(time.RFC3339, *r.EventEndAt)
		if err != nil {
			return nil, err
		}
		m.EventEndAt = &endAt
	}
	return m, nil
}

type UpdateEventRequest struct {
	EventTitle       *string `json:"event_title" validate:"omitempty,min=3,max=255"`
	EventDescription *string `json:"event_description" validate:"omitempty,max=5000"`
	EventLocation    *string `json:"event_location" validate:"omitempty,max=255"`
	EventStartAt     *string `json:"event_start_at"`
	EventEndAt       *string `json:"event_end_at"`
}

func (r *UpdateEventRequest) ApplyToModel(m *model.EventModel) error {
	if r.EventTitle != nil {
		m.EventTitle = *r.EventTitle
	}
	if r.EventDescription != nil {
		m.EventDescription = *r.EventDescription
	}
	if r.EventLocation != nil {
		m.EventLocation = *r.EventLocation
	}
	if r.EventStartAt != nil && *r.EventStartAt != "" {
		startAt, err := time.Parse(time.RFC3339, *r.EventStartAt)
		if err != nil {
			return err
		}
		m.EventStartAt = startAt
	}
	if r.EventEndAt != nil {
		if *r.EventEndAt == "" {
			m.EventEndAt = nil
		} else {
			endAt, err := time.Parse(time.RFC3339, *r.EventEndAt)
			if err != nil {
				return err
			}
			m.EventEndAt = &endAt
		}
	}
	return nil
}

type ServiceTimeRequest struct {
	ServiceTimeName      string `json:"service_time_name" validate:"required,min=3,max=255"`
	ServiceTimeDayOfWeek int    `json:"service_time_day_of_week" validate:"min=0,max=6"`
	ServiceTimeStartTime string `json:"service_time_start_time" validate:"required,len=5"` // "HH:MM"
	ServiceTimeEndTime   string `json:"service_time_end_time" validate:"omitempty,len=5"`
	ServiceTimeLocation  string `json:"service_time_location" validate:"max=255"`
}

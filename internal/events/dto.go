package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
)

// EventDTO is the transport shape for a one-off happening.
type EventDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ServiceTemplateDTO is a recurring weekly service definition.
type ServiceTemplateDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Weekday   int       `json:"weekday"`
	StartTime string    `json:"start_time"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEventRequest is the payload for creating an event.
type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description,omitempty"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
}

// CreateServiceTemplateRequest defines a new recurring weekly service.
type CreateServiceTemplateRequest struct {
	Name      string `json:"name" validate:"required"`
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
}

// UpdateServiceTemplateRequest carries the mutable template fields.
type UpdateServiceTemplateRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Weekday   *int    `json:"weekday,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func eventFromModel(e *models.Event) *EventDTO {
	if e == nil {
		return nil
	}
	return &EventDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		LocationID:  e.LocationID,
		CreatedAt:   e.CreatedAt,
	}
}

func templateFromModel(s *models.ChurchService) *ServiceTemplateDTO {
	if s == nil {
		return nil
	}
	return &ServiceTemplateDTO{
		ID:        s.ID,
		Name:      s.Name,
		Weekday:   s.Weekday,
		StartTime: s.StartTime,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

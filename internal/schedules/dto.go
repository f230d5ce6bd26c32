package schedules

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// ScheduleDTO is the transport shape for a dated occurrence.
type ScheduleDTO struct {
	ID         uuid.UUID          `json:"id"`
	Date       time.Time          `json:"date"`
	Name       *string            `json:"name,omitempty"`
	Type       enums.ScheduleType `json:"type"`
	ServiceID  *uuid.UUID         `json:"service_id,omitempty"`
	EventID    *uuid.UUID         `json:"event_id,omitempty"`
	LocationID *uuid.UUID         `json:"location_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// AssignmentDTO staffs one member onto one schedule, with the member's name
// resolved for listings.
type AssignmentDTO struct {
	ID         uuid.UUID              `json:"id"`
	ScheduleID uuid.UUID              `json:"schedule_id"`
	UserID     uuid.UUID              `json:"user_id"`
	UserName   string                 `json:"user_name"`
	FunctionID *uuid.UUID             `json:"function_id,omitempty"`
	Status     enums.AssignmentStatus `json:"status"`
	Notes      *string                `json:"notes,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// CreateScheduleRequest is the payload for creating a dated occurrence.
type CreateScheduleRequest struct {
	Date       time.Time          `json:"date" validate:"required"`
	Name       *string            `json:"name,omitempty"`
	Type       enums.ScheduleType `json:"type,omitempty"`
	ServiceID  *uuid.UUID         `json:"service_id,omitempty"`
	EventID    *uuid.UUID         `json:"event_id,omitempty"`
	LocationID *uuid.UUID         `json:"location_id,omitempty"`
}

// GenerateRequest materializes schedules for a recurring service over a range.
type GenerateRequest struct {
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// GenerateResult reports how many occurrences were materialized.
type GenerateResult struct {
	SchedulesCreated int           `json:"schedules_created"`
	Schedules        []ScheduleDTO `json:"schedules"`
}

// RespondRequest lets an assigned member confirm or decline.
type RespondRequest struct {
	Status enums.AssignmentStatus `json:"status" validate:"required"`
}

func scheduleFromModel(s *models.Schedule) *ScheduleDTO {
	if s == nil {
		return nil
	}
	return &ScheduleDTO{
		ID:         s.ID,
		Date:       s.Date,
		Name:       s.Name,
		Type:       s.Type,
		ServiceID:  s.ServiceID,
		EventID:    s.EventID,
		LocationID: s.LocationID,
		CreatedAt:  s.CreatedAt,
	}
}

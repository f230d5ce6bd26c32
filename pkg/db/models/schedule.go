package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// Schedule is a concrete, dated occurrence requiring staffing.
type Schedule struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Date       time.Time          `gorm:"column:date;not null;index"`
	Name       *string            `gorm:"column:name"`
	Type       enums.ScheduleType `gorm:"column:type;type:schedule_type;not null;default:'standalone'"`
	ServiceID  *uuid.UUID         `gorm:"column:service_id;type:uuid"`
	EventID    *uuid.UUID         `gorm:"column:event_id;type:uuid"`
	LocationID *uuid.UUID         `gorm:"column:location_id;type:uuid"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a one-off happening (conference, outreach) that may spawn schedules.
type Event struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description *string    `gorm:"column:description"`
	StartsAt    time.Time  `gorm:"column:starts_at;not null"`
	EndsAt      *time.Time `gorm:"column:ends_at"`
	LocationID  *uuid.UUID `gorm:"column:location_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

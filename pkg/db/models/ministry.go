package models

import (
	"time"

	"github.com/google/uuid"
)

// Ministry is a serving team (worship, sound, hospitality, ...).
type Ministry struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;not null;uniqueIndex"`
	Description *string    `gorm:"column:description"`
	LeaderID    *uuid.UUID `gorm:"column:leader_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

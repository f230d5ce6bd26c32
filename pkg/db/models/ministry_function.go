package models

import (
	"time"

	"github.com/google/uuid"
)

// MinistryFunction is a named specialization inside a ministry ("Vocal", "Sound desk").
type MinistryFunction struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MinistryID uuid.UUID `gorm:"column:ministry_id;type:uuid;not null;index"`
	Name       string    `gorm:"column:name;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ChurchService is a weekly recurring service template; concrete dated
// occurrences are materialized as Schedule rows.
type ChurchService struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Weekday   int       `gorm:"column:weekday;not null"`
	StartTime string    `gorm:"column:start_time;not null"`
	Active    bool      `gorm:"column:active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

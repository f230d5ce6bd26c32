package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a physical room or venue schedules and equipment reference.
type Location struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Address   *string   `gorm:"column:address"`
	Capacity  *int      `gorm:"column:capacity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

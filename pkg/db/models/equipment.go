package models

import (
	"time"

	"github.com/google/uuid"
)

// Equipment is an inventory item tracked per location.
type Equipment struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Description *string    `gorm:"column:description"`
	Quantity    int        `gorm:"column:quantity;not null;default:1"`
	LocationID  *uuid.UUID `gorm:"column:location_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

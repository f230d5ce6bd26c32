package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAvailability marks one weekday of a user's weekly serving availability.
// A user with no rows at all is treated as available every day.
type UserAvailability struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_weekday"`
	Weekday   int       `gorm:"column:weekday;not null;uniqueIndex:idx_user_weekday"`
	// No gorm default here: GORM omits zero-value fields that carry a default
	// tag on Create, which would turn an explicit false into the DB default.
	Available bool      `gorm:"column:available;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// ScheduleAssignment staffs one user onto one schedule. The composite unique
// index is the storage-level backstop against double-booking the same slot.
type ScheduleAssignment struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ScheduleID uuid.UUID              `gorm:"column:schedule_id;type:uuid;not null;uniqueIndex:idx_schedule_user"`
	UserID     uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_schedule_user"`
	FunctionID *uuid.UUID             `gorm:"column:function_id;type:uuid"`
	Status     enums.AssignmentStatus `gorm:"column:status;type:assignment_status;not null;default:'pending'"`
	Notes      *string                `gorm:"column:notes"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

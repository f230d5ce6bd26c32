package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// MinistryMembership links a user with a ministry, optionally tagged with the
// function the member performs. It is the source of truth for qualifications.
type MinistryMembership struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MinistryID uuid.UUID              `gorm:"column:ministry_id;type:uuid;not null;uniqueIndex:idx_ministry_user"`
	UserID     uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_ministry_user"`
	FunctionID *uuid.UUID             `gorm:"column:function_id;type:uuid"`
	Status     enums.MembershipStatus `gorm:"column:status;type:membership_status;not null;default:'active'"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

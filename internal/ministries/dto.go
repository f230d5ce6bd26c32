package ministries

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// MinistryDTO is the transport shape for a serving team.
type MinistryDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	LeaderID    *uuid.UUID `json:"leader_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FunctionDTO is a named specialization inside a ministry.
type FunctionDTO struct {
	ID         uuid.UUID `json:"id"`
	MinistryID uuid.UUID `json:"ministry_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// MembershipDTO links a member to a ministry, with the member's display name
// resolved for listings.
type MembershipDTO struct {
	ID         uuid.UUID              `json:"id"`
	MinistryID uuid.UUID              `json:"ministry_id"`
	UserID     uuid.UUID              `json:"user_id"`
	UserName   string                 `json:"user_name"`
	FunctionID *uuid.UUID             `json:"function_id,omitempty"`
	Status     enums.MembershipStatus `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
}

// CreateMinistryRequest is the payload for creating a serving team.
type CreateMinistryRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description,omitempty"`
	LeaderID    *uuid.UUID `json:"leader_id,omitempty"`
}

// UpdateMinistryRequest carries the mutable ministry fields.
type UpdateMinistryRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string    `json:"description,omitempty"`
	LeaderID    *uuid.UUID `json:"leader_id,omitempty"`
}

// CreateFunctionRequest adds a specialization to a ministry.
type CreateFunctionRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddMemberRequest enrolls a user into a ministry.
type AddMemberRequest struct {
	UserID     uuid.UUID  `json:"user_id" validate:"required"`
	FunctionID *uuid.UUID `json:"function_id,omitempty"`
}

// UpdateMembershipRequest changes the membership status or function tag.
type UpdateMembershipRequest struct {
	Status     *enums.MembershipStatus `json:"status,omitempty"`
	FunctionID *uuid.UUID              `json:"function_id,omitempty"`
}

func ministryFromModel(m *models.Ministry) *MinistryDTO {
	if m == nil {
		return nil
	}
	return &MinistryDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		LeaderID:    m.LeaderID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func functionFromModel(f *models.MinistryFunction) *FunctionDTO {
	if f == nil {
		return nil
	}
	return &FunctionDTO{
		ID:         f.ID,
		MinistryID: f.MinistryID,
		Name:       f.Name,
		CreatedAt:  f.CreatedAt,
	}
}

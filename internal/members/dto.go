package members

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// MemberDTO is the transport shape that omits credentials.
type MemberDTO struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	Name        string           `json:"name"`
	Phone       *string          `json:"phone,omitempty"`
	IsActive    bool             `json:"is_active"`
	Role        enums.SystemRole `json:"role"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateMemberDTO holds the data required by the repo to persist a new member.
type CreateMemberDTO struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Role         enums.SystemRole
	IsActive     *bool
}

// UpdateMemberRequest carries the mutable profile fields.
type UpdateMemberRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone *string `json:"phone,omitempty"`
}

// AvailabilityEntry is one weekday of a member's weekly availability.
type AvailabilityEntry struct {
	Weekday   int  `json:"weekday" validate:"min=0,max=6"`
	Available bool `json:"available"`
}

// SetAvailabilityRequest replaces the member's full weekly availability.
type SetAvailabilityRequest struct {
	Entries []AvailabilityEntry `json:"entries" validate:"required,dive"`
}

// MemberPage is one cursor page of members.
type MemberPage struct {
	Members    []MemberDTO `json:"members"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

func FromModel(u *models.User) *MemberDTO {
	if u == nil {
		return nil
	}
	return &MemberDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateMemberDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}
	role := c.Role
	if role == "" {
		role = enums.SystemRoleMember
	}
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Name:         c.Name,
		Phone:        c.Phone,
		IsActive:     isActive,
		Role:         role,
	}
}

func availabilityFromModels(rows []models.UserAvailability) []AvailabilityEntry {
	entries := make([]AvailabilityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, AvailabilityEntry{Weekday: row.Weekday, Available: row.Available})
	}
	return entries
}

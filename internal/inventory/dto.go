package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
)

// LocationDTO is the transport shape for a room or venue.
type LocationDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Capacity  *int      `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EquipmentDTO is an inventory item tracked per location.
type EquipmentDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Quantity    int        `json:"quantity"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateLocationRequest is the payload for registering a venue.
type CreateLocationRequest struct {
	Name     string  `json:"name" validate:"required"`
	Address  *string `json:"address,omitempty"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
}

// CreateEquipmentRequest registers an inventory item.
type CreateEquipmentRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Quantity    int        `json:"quantity" validate:"min=1"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
}

// UpdateEquipmentRequest carries the mutable equipment fields.
type UpdateEquipmentRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string    `json:"description,omitempty"`
	Quantity    *int       `json:"quantity,omitempty" validate:"omitempty,min=0"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
}

func locationFromModel(l *models.Location) *LocationDTO {
	if l == nil {
		return nil
	}
	return &LocationDTO{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Capacity:  l.Capacity,
		CreatedAt: l.CreatedAt,
	}
}

func equipmentFromModel(e *models.Equipment) *EquipmentDTO {
	if e == nil {
		return nil
	}
	return &EquipmentDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Quantity:    e.Quantity,
		LocationID:  e.LocationID,
		CreatedAt:   e.CreatedAt,
	}
}

package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db"
	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Service defines the behavior needed by the inventory controller.
type Service interface {
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationDTO, error)
	ListLocations(ctx context.Context) ([]LocationDTO, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (*EquipmentDTO, error)
	ListEquipment(ctx context.Context, locationID *uuid.UUID) ([]EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uuid.UUID, req UpdateEquipmentRequest) (*EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs the inventory service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationDTO, error) {
	location := &models.Location{
		Name:     req.Name,
		Address:  req.Address,
		Capacity: req.Capacity,
	}
	if err := s.repo.CreateLocation(ctx, location); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "location name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create location")
	}
	return locationFromModel(location), nil
}

func (s *service) ListLocations(ctx context.Context) ([]LocationDTO, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list locations")
	}
	dtos := make([]LocationDTO, 0, len(locations))
	for i := range locations {
		dtos = append(dtos, *locationFromModel(&locations[i]))
	}
	return dtos, nil
}

func (s *service) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete location")
	}
	return nil
}

func (s *service) CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (*EquipmentDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if req.LocationID != nil {
		if _, err := s.repo.GetLocation(ctx, *req.LocationID); err != nil {
			if IsNotFound(err) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "location does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load location")
		}
	}

	equipment := &models.Equipment{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		LocationID:  req.LocationID,
	}
	if err := s.repo.CreateEquipment(ctx, equipment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create equipment")
	}
	return equipmentFromModel(equipment), nil
}

func (s *service) ListEquipment(ctx context.Context, locationID *uuid.UUID) ([]EquipmentDTO, error) {
	equipment, err := s.repo.ListEquipment(ctx, locationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list equipment")
	}
	dtos := make([]EquipmentDTO, 0, len(equipment))
	for i := range equipment {
		dtos = append(dtos, *equipmentFromModel(&equipment[i]))
	}
	return dtos, nil
}

func (s *service) UpdateEquipment(ctx context.Context, id uuid.UUID, req UpdateEquipmentRequest) (*EquipmentDTO, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		updates["quantity"] = *req.Quantity
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	equipment, err := s.repo.UpdateEquipment(ctx, id, updates)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update equipment")
	}
	return equipmentFromModel(equipment), nil
}

func (s *service) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteEquipment(ctx, id); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete equipment")
	}
	return nil
}

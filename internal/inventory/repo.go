package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
)

// Repository exposes location and equipment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateLocation(ctx context.Context, location *models.Location) error {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *Repository) GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *Repository) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).Order("name").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *Repository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) CreateEquipment(ctx context.Context, equipment *models.Equipment) error {
	if equipment.ID == uuid.Nil {
		equipment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(equipment).Error
}

func (r *Repository) GetEquipment(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	var equipment models.Equipment
	if err := r.db.WithContext(ctx).First(&equipment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &equipment, nil
}

// ListEquipment returns inventory, optionally narrowed to one location.
func (r *Repository) ListEquipment(ctx context.Context, locationID *uuid.UUID) ([]models.Equipment, error) {
	query := r.db.WithContext(ctx).Order("name")
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	var equipment []models.Equipment
	if err := query.Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

func (r *Repository) UpdateEquipment(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Equipment, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&models.Equipment{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetEquipment(ctx, id)
}

func (r *Repository) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Equipment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether the error is the driver's missing-row sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
)

// Repository exposes event and service-template persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *Repository) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Order("starts_at, id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) CreateTemplate(ctx context.Context, template *models.ChurchService) error {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *Repository) GetTemplate(ctx context.Context, id uuid.UUID) (*models.ChurchService, error) {
	var template models.ChurchService
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *Repository) ListTemplates(ctx context.Context) ([]models.ChurchService, error) {
	var templates []models.ChurchService
	err := r.db.WithContext(ctx).Order("weekday, start_time").Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *Repository) UpdateTemplate(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.ChurchService, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&models.ChurchService{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetTemplate(ctx, id)
}

// IsNotFound reports whether the error is the driver's missing-row sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

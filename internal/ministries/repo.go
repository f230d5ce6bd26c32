package ministries

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// Repository exposes ministry persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateMinistry(ctx context.Context, ministry *models.Ministry) error {
	if ministry.ID == uuid.Nil {
		ministry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(ministry).Error
}

func (r *Repository) GetMinistry(ctx context.Context, id uuid.UUID) (*models.Ministry, error) {
	var ministry models.Ministry
	if err := r.db.WithContext(ctx).First(&ministry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ministry, nil
}

func (r *Repository) ListMinistries(ctx context.Context) ([]models.Ministry, error) {
	var ministries []models.Ministry
	err := r.db.WithContext(ctx).Order("name").Find(&ministries).Error
	if err != nil {
		return nil, err
	}
	return ministries, nil
}

func (r *Repository) UpdateMinistry(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Ministry, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.Ministry{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetMinistry(ctx, id)
}

func (r *Repository) DeleteMinistry(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ministry_id = ?", id).Delete(&models.MinistryMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ministry_id = ?", id).Delete(&models.MinistryFunction{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Ministry{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *Repository) CreateFunction(ctx context.Context, function *models.MinistryFunction) error {
	if function.ID == uuid.Nil {
		function.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(function).Error
}

func (r *Repository) ListFunctions(ctx context.Context, ministryID uuid.UUID) ([]models.MinistryFunction, error) {
	var functions []models.MinistryFunction
	err := r.db.WithContext(ctx).
		Where("ministry_id = ?", ministryID).
		Order("created_at, id").
		Find(&functions).Error
	if err != nil {
		return nil, err
	}
	return functions, nil
}

func (r *Repository) DeleteFunction(ctx context.Context, ministryID, functionID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("ministry_id = ?", ministryID).
		Delete(&models.MinistryFunction{}, "id = ?", functionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) CreateMembership(ctx context.Context, membership *models.MinistryMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	if membership.Status == "" {
		membership.Status = enums.MembershipStatusActive
	}
	return r.db.WithContext(ctx).Create(membership).Error
}

type membershipRow struct {
	models.MinistryMembership
	UserName string
}

// ListMemberships returns the ministry roster with member names resolved.
func (r *Repository) ListMemberships(ctx context.Context, ministryID uuid.UUID) ([]MembershipDTO, error) {
	var rows []membershipRow
	err := r.db.WithContext(ctx).
		Model(&models.MinistryMembership{}).
		Select("ministry_memberships.*, users.name AS user_name").
		Joins("JOIN users ON users.id = ministry_memberships.user_id").
		Where("ministry_memberships.ministry_id = ?", ministryID).
		Order("users.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]MembershipDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, MembershipDTO{
			ID:         row.ID,
			MinistryID: row.MinistryID,
			UserID:     row.UserID,
			UserName:   row.UserName,
			FunctionID: row.FunctionID,
			Status:     row.Status,
			CreatedAt:  row.CreatedAt,
		})
	}
	return dtos, nil
}

func (r *Repository) GetMembership(ctx context.Context, ministryID, userID uuid.UUID) (*models.MinistryMembership, error) {
	var membership models.MinistryMembership
	err := r.db.WithContext(ctx).
		Where("ministry_id = ? AND user_id = ?", ministryID, userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *Repository) UpdateMembership(ctx context.Context, ministryID, userID uuid.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.MinistryMembership{}).
		Where("ministry_id = ? AND user_id = ?", ministryID, userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) DeleteMembership(ctx context.Context, ministryID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("ministry_id = ? AND user_id = ?", ministryID, userID).
		Delete(&models.MinistryMembership{})
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

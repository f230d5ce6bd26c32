package schedules

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
)

// Repository exposes schedule and assignment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *Repository) ListInRange(ctx context.Context, from, to time.Time) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date, id").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// ExistsForServiceOn reports whether the recurring service already has an
// occurrence on the given calendar day, so generation stays idempotent.
func (r *Repository) ExistsForServiceOn(ctx context.Context, serviceID uuid.UUID, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("service_id = ? AND date >= ? AND date < ?", serviceID, start, end).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).Delete(&models.ScheduleAssignment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Schedule{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

type assignmentRow struct {
	models.ScheduleAssignment
	UserName string
}

// ListAssignments returns the schedule's roster with member names resolved.
func (r *Repository) ListAssignments(ctx context.Context, scheduleID uuid.UUID) ([]AssignmentDTO, error) {
	var rows []assignmentRow
	err := r.db.WithContext(ctx).
		Model(&models.ScheduleAssignment{}).
		Select("schedule_assignments.*, users.name AS user_name").
		Joins("JOIN users ON users.id = schedule_assignments.user_id").
		Where("schedule_assignments.schedule_id = ?", scheduleID).
		Order("users.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]AssignmentDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, AssignmentDTO{
			ID:         row.ID,
			ScheduleID: row.ScheduleID,
			UserID:     row.UserID,
			UserName:   row.UserName,
			FunctionID: row.FunctionID,
			Status:     row.Status,
			Notes:      row.Notes,
			CreatedAt:  row.CreatedAt,
		})
	}
	return dtos, nil
}

func (r *Repository) GetAssignment(ctx context.Context, id uuid.UUID) (*models.ScheduleAssignment, error) {
	var assignment models.ScheduleAssignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *Repository) UpdateAssignmentStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.ScheduleAssignment{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ScheduleAssignment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*models.ChurchService, error) {
	var service models.ChurchService
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// IsNotFound reports whether the error is the driver's missing-row sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

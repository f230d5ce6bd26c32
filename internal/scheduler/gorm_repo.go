package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// GormRepository implements Repository against the shared GORM connection.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListActiveUsers returns eligible volunteers in creation order; the ranker's
// stable sort preserves this order for equal scores.
func (r *GormRepository) ListActiveUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at, id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepository) GetSchedule(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var schedule models.Schedule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *GormRepository) ListSchedulesInRange(ctx context.Context, from, to time.Time) ([]models.Schedule, error) {
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

func (r *GormRepository) ListAssignmentsForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]models.ScheduleAssignment, error) {
	var assignments []models.ScheduleAssignment
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *GormRepository) ListAssignmentsForUser(ctx context.Context, userID uuid.UUID) ([]models.ScheduleAssignment, error) {
	var assignments []models.ScheduleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// CountUserAssignmentsBetween counts assignments whose schedule falls inside
// the window; it feeds the rotation fairness criterion.
func (r *GormRepository) CountUserAssignmentsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScheduleAssignment{}).
		Joins("JOIN schedules ON schedules.id = schedule_assignments.schedule_id").
		Where("schedule_assignments.user_id = ? AND schedules.date >= ? AND schedules.date <= ?", userID, from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListUserAssignmentsOnDay returns the user's assignments on the given
// calendar day, regardless of which schedule they belong to.
func (r *GormRepository) ListUserAssignmentsOnDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.ScheduleAssignment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var assignments []models.ScheduleAssignment
	err := r.db.WithContext(ctx).
		Joins("JOIN schedules ON schedules.id = schedule_assignments.schedule_id").
		Where("schedule_assignments.user_id = ? AND schedules.date >= ? AND schedules.date < ?", userID, start, end).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *GormRepository) CreateAssignment(ctx context.Context, assignment *models.ScheduleAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *GormRepository) GetMinistry(ctx context.Context, id uuid.UUID) (*models.Ministry, error) {
	var ministry models.Ministry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ministry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ministry, nil
}

func (r *GormRepository) ListMinistryFunctions(ctx context.Context, ministryID uuid.UUID) ([]models.MinistryFunction, error) {
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

func (r *GormRepository) GetFunction(ctx context.Context, id uuid.UUID) (*models.MinistryFunction, error) {
	var function models.MinistryFunction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&function).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &function, nil
}

// HasQualification reports whether the user holds an active membership tagged
// with the requested function in the ministry owning it.
func (r *GormRepository) HasQualification(ctx context.Context, userID, functionID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MinistryMembership{}).
		Joins("JOIN ministry_functions ON ministry_functions.id = ?", functionID).
		Where("ministry_memberships.user_id = ?", userID).
		Where("ministry_memberships.ministry_id = ministry_functions.ministry_id").
		Where("ministry_memberships.function_id = ?", functionID).
		Where("ministry_memberships.status = ?", enums.MembershipStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) ListUserAvailability(ctx context.Context, userID uuid.UUID) ([]models.UserAvailability, error) {
	var rows []models.UserAvailability
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

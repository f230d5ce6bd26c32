package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
)

// Repository is the narrow persistence surface the engine depends on. Lookups
// return (nil, nil) when the row does not exist; errors are reserved for
// infrastructure failures.
type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListActiveUsers(ctx context.Context) ([]models.User, error)

	GetSchedule(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	ListSchedulesInRange(ctx context.Context, from, to time.Time) ([]models.Schedule, error)

	ListAssignmentsForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]models.ScheduleAssignment, error)
	ListAssignmentsForUser(ctx context.Context, userID uuid.UUID) ([]models.ScheduleAssignment, error)
	CountUserAssignmentsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
	ListUserAssignmentsOnDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.ScheduleAssignment, error)
	CreateAssignment(ctx context.Context, assignment *models.ScheduleAssignment) error

	GetMinistry(ctx context.Context, id uuid.UUID) (*models.Ministry, error)
	ListMinistryFunctions(ctx context.Context, ministryID uuid.UUID) ([]models.MinistryFunction, error)
	GetFunction(ctx context.Context, id uuid.UUID) (*models.MinistryFunction, error)
	HasQualification(ctx context.Context, userID, functionID uuid.UUID) (bool, error)

	ListUserAvailability(ctx context.Context, userID uuid.UUID) ([]models.UserAvailability, error)
}

package scheduler

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Rejection reasons returned by Validate. Callers embed them in user-facing
// error strings, so they read as plain sentences.
const (
	reasonInactiveVolunteer = "volunteer is inactive or does not exist"
	reasonScheduleNotFound  = "schedule does not exist"
	reasonAlreadyOnSchedule = "already assigned to this schedule"
	reasonSameDayConflict   = "already has an assignment on the same day"
)

// Validate runs the conflict checks an assignment must pass before it is
// committed. The first failing check wins; an invalid pairing is a normal
// result, not an error.
func (s *service) Validate(ctx context.Context, scheduleID, userID uuid.UUID) (ValidationResult, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return ValidationResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading volunteer")
	}
	if user == nil || !user.IsActive {
		return ValidationResult{Valid: false, Reason: reasonInactiveVolunteer}, nil
	}

	schedule, err := s.repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		return ValidationResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading schedule")
	}
	if schedule == nil {
		return ValidationResult{Valid: false, Reason: reasonScheduleNotFound}, nil
	}

	assignments, err := s.repo.ListAssignmentsForSchedule(ctx, scheduleID)
	if err != nil {
		return ValidationResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing schedule assignments")
	}
	for _, assignment := range assignments {
		if assignment.UserID == userID {
			return ValidationResult{Valid: false, Reason: reasonAlreadyOnSchedule}, nil
		}
	}

	sameDay, err := s.repo.ListUserAssignmentsOnDay(ctx, userID, schedule.Date)
	if err != nil {
		return ValidationResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking same-day assignments")
	}
	for _, assignment := range sameDay {
		if assignment.ScheduleID != scheduleID {
			return ValidationResult{Valid: false, Reason: reasonSameDayConflict}, nil
		}
	}

	return ValidationResult{Valid: true}, nil
}

package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

const (
	availabilityPoints    = 40
	specialistPoints      = 30
	unqualifiedSlotPoints = 5
	generalSlotPoints     = 15

	rotationWindowDays = 30

	// defaultConfirmationRate is assumed for volunteers with no history, so
	// new volunteers are not penalized for never having served.
	defaultConfirmationRate = 0.8
)

// Score computes the 0-100 suitability estimate for one volunteer against one
// slot. Unavailability is an absolute disqualifier: the remaining criteria are
// skipped and the total stays at zero.
func (s *service) Score(ctx context.Context, user *models.User, scheduleDate time.Time, functionID *uuid.UUID) (ScoreResult, error) {
	var result ScoreResult

	weekday := scheduleDate.Weekday()
	available, err := s.isAvailableOn(ctx, user.ID, weekday)
	if err != nil {
		return ScoreResult{}, err
	}
	if !available {
		result.Reasons = append(result.Reasons, fmt.Sprintf("not available on %ss", weekday))
		return result, nil
	}
	result.Total += availabilityPoints
	result.Reasons = append(result.Reasons, fmt.Sprintf("available on %s", weekday))

	if functionID == nil {
		result.Total += generalSlotPoints
		result.Reasons = append(result.Reasons, "general slot, no specialization required")
	} else {
		qualified, err := s.repo.HasQualification(ctx, user.ID, *functionID)
		if err != nil {
			return ScoreResult{}, err
		}
		if qualified {
			name, err := s.functionName(ctx, *functionID)
			if err != nil {
				return ScoreResult{}, err
			}
			result.Total += specialistPoints
			result.Reasons = append(result.Reasons, fmt.Sprintf("specialist in %s", name))
		} else {
			result.Total += unqualifiedSlotPoints
			result.Reasons = append(result.Reasons, "can serve without the requested specialization")
		}
	}

	// Rotation window is anchored to now, not to the target schedule date.
	now := s.now()
	recent, err := s.repo.CountUserAssignmentsBetween(ctx, user.ID, now.AddDate(0, 0, -rotationWindowDays), now)
	if err != nil {
		return ScoreResult{}, err
	}
	switch {
	case recent == 0:
		result.Total += 20
		result.Reasons = append(result.Reasons, "has not served in the last 30 days, boosts rotation")
	case recent == 1:
		result.Total += 15
		result.Reasons = append(result.Reasons, "served once in the last 30 days")
	case recent == 2:
		result.Total += 10
		result.Reasons = append(result.Reasons, "served twice in the last 30 days")
	default:
		result.Total += 5
		result.Reasons = append(result.Reasons, "served three or more times in the last 30 days")
	}

	rate, hasHistory, err := s.confirmationRate(ctx, user.ID)
	if err != nil {
		return ScoreResult{}, err
	}
	if points := reliabilityPoints(rate); points > 0 {
		result.Total += points
		if hasHistory {
			result.Reasons = append(result.Reasons, fmt.Sprintf("%d%% confirmation rate", int(math.Round(rate*100))))
		} else {
			result.Reasons = append(result.Reasons, "no serving history yet, assumed reliable")
		}
	}

	return result, nil
}

// isAvailableOn checks the user's weekly availability. A user with no rows at
// all defaults to available; a user maintaining rows is available exactly on
// the weekdays marked available.
func (s *service) isAvailableOn(ctx context.Context, userID uuid.UUID, weekday time.Weekday) (bool, error) {
	rows, err := s.repo.ListUserAvailability(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return true, nil
	}
	for _, row := range rows {
		if time.Weekday(row.Weekday) == weekday {
			return row.Available, nil
		}
	}
	return false, nil
}

func (s *service) confirmationRate(ctx context.Context, userID uuid.UUID) (float64, bool, error) {
	assignments, err := s.repo.ListAssignmentsForUser(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if len(assignments) == 0 {
		return defaultConfirmationRate, false, nil
	}
	confirmed := 0
	for _, assignment := range assignments {
		if assignment.Status == enums.AssignmentStatusConfirmed {
			confirmed++
		}
	}
	return float64(confirmed) / float64(len(assignments)), true, nil
}

func reliabilityPoints(rate float64) int {
	switch {
	case rate >= 0.9:
		return 10
	case rate >= 0.7:
		return 7
	case rate >= 0.5:
		return 4
	default:
		return 0
	}
}

func (s *service) functionName(ctx context.Context, functionID uuid.UUID) (string, error) {
	function, err := s.repo.GetFunction(ctx, functionID)
	if err != nil {
		return "", err
	}
	if function == nil {
		return "requested function", nil
	}
	return function.Name, nil
}

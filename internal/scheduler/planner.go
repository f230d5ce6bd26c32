package scheduler

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Plan builds one suggestion record per schedule. With a ministry it ranks the
// single best specialist per function; without one it ranks a short list of
// generalists. Schedules that resolve to nothing are skipped, not errors.
func (s *service) Plan(ctx context.Context, scheduleIDs []uuid.UUID, ministryID *uuid.UUID) (*PlanResult, error) {
	result := &PlanResult{Suggestions: []ScheduleSuggestion{}}
	result.Stats.TotalSchedules = len(scheduleIDs)

	var functions []models.MinistryFunction
	if ministryID != nil {
		ministry, err := s.repo.GetMinistry(ctx, *ministryID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading ministry")
		}
		if ministry == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ministry not found")
		}
		functions, err = s.repo.ListMinistryFunctions(ctx, *ministryID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing ministry functions")
		}
	}

	var scoreSum int
	for _, scheduleID := range scheduleIDs {
		schedule, err := s.repo.GetSchedule(ctx, scheduleID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading schedule")
		}
		if schedule == nil {
			continue
		}

		record := ScheduleSuggestion{
			ScheduleID:   schedule.ID,
			ScheduleName: scheduleDisplayName(schedule),
			ScheduleDate: schedule.Date,
		}

		if len(functions) > 0 {
			for i := range functions {
				function := functions[i]
				candidates, err := s.Rank(ctx, schedule.Date, &function.ID, 1)
				if err != nil {
					return nil, err
				}
				record.Suggestions = append(record.Suggestions, candidates...)
			}
		} else {
			candidates, err := s.Rank(ctx, schedule.Date, nil, defaultCandidateLimit)
			if err != nil {
				return nil, err
			}
			record.Suggestions = candidates
		}

		if len(record.Suggestions) == 0 {
			continue
		}
		for _, candidate := range record.Suggestions {
			scoreSum += candidate.Score
		}
		result.Stats.TotalSuggestions += len(record.Suggestions)
		result.Suggestions = append(result.Suggestions, record)
	}

	if result.Stats.TotalSuggestions > 0 {
		result.Stats.AvgScore = float64(scoreSum) / float64(result.Stats.TotalSuggestions)
	}
	return result, nil
}

func scheduleDisplayName(schedule *models.Schedule) string {
	if schedule.Name != nil && *schedule.Name != "" {
		return *schedule.Name
	}
	return schedule.Date.Format("Jan 2, 2006 15:04")
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db"
	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Apply commits an accepted suggestion set sequentially. Each pairing is
// re-validated right before insert; a failing pairing is recorded and the rest
// of the batch continues. Re-applying the same set is safe: every pairing that
// already exists lands in Errors and nothing is duplicated.
func (s *service) Apply(ctx context.Context, suggestions []ScheduleSuggestion) (*ApplyResult, error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveDuration("apply", time.Since(started))
	}()

	result := &ApplyResult{Errors: []string{}}
	for _, record := range suggestions {
		for _, candidate := range record.Suggestions {
			check, err := s.Validate(ctx, record.ScheduleID, candidate.UserID)
			if err != nil {
				return nil, err
			}
			if !check.Valid {
				s.metrics.IncRejected(check.Reason)
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", candidate.UserName, check.Reason))
				continue
			}

			notes := fmt.Sprintf("auto-assigned with score %d", candidate.Score)
			assignment := &models.ScheduleAssignment{
				ScheduleID: record.ScheduleID,
				UserID:     candidate.UserID,
				FunctionID: candidate.FunctionID,
				Status:     enums.AssignmentStatusPending,
				Notes:      &notes,
			}
			if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
				// The unique (schedule_id, user_id) index backstops races
				// between the validation read and the insert.
				if db.IsUniqueViolation(err, "") {
					s.metrics.IncRejected(reasonAlreadyOnSchedule)
					result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", candidate.UserName, reasonAlreadyOnSchedule))
					continue
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating assignment")
			}
			result.AssignmentsCreated++
		}
	}

	s.metrics.AddApplied(result.AssignmentsCreated)
	return result, nil
}

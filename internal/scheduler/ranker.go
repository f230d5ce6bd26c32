package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Rank scores every active volunteer against the slot, drops disqualified
// ones, and returns the top candidates by score. Ties keep the repository's
// creation order.
func (s *service) Rank(ctx context.Context, scheduleDate time.Time, functionID *uuid.UUID, limit int) ([]CandidateSuggestion, error) {
	users, err := s.repo.ListActiveUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing volunteers")
	}

	var functionName *string
	if functionID != nil {
		name, err := s.functionName(ctx, *functionID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving function")
		}
		functionName = &name
	}

	ranked := make([]CandidateSuggestion, 0, len(users))
	for i := range users {
		user := users[i]
		score, err := s.Score(ctx, &user, scheduleDate, functionID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scoring volunteer")
		}
		if score.Total == 0 {
			continue
		}
		ranked = append(ranked, CandidateSuggestion{
			UserID:       user.ID,
			UserName:     user.Name,
			FunctionID:   functionID,
			FunctionName: functionName,
			Score:        score.Total,
			Reasons:      score.Reasons,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

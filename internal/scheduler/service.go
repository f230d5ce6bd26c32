package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
	"github.com/ecclesia-app/ecclesia-backend/pkg/metrics"
)

const (
	// defaultCandidateLimit is how many ranked volunteers a general slot gets.
	defaultCandidateLimit = 3
	defaultMaxRangeDays   = 92
)

// Service is the volunteer auto-assignment engine: it plans ranked suggestion
// sets for open schedules and commits accepted ones into assignments.
type Service interface {
	Suggest(ctx context.Context, params SuggestParams) (*PlanResult, error)
	Plan(ctx context.Context, scheduleIDs []uuid.UUID, ministryID *uuid.UUID) (*PlanResult, error)
	Apply(ctx context.Context, suggestions []ScheduleSuggestion) (*ApplyResult, error)
	Validate(ctx context.Context, scheduleID, userID uuid.UUID) (ValidationResult, error)
}

type service struct {
	repo         Repository
	metrics      *metrics.SchedulerMetrics
	maxRangeDays int
	now          func() time.Time
}

// Params wires the engine's dependencies.
type Params struct {
	Repo    Repository
	Metrics *metrics.SchedulerMetrics
	// MaxRangeDays bounds the suggest date range; zero uses the default.
	MaxRangeDays int
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// NewService constructs the stateless engine. It holds no mutable fields, so a
// single instance is shared across requests.
func NewService(params Params) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "scheduler repository required")
	}
	if params.MaxRangeDays <= 0 {
		params.MaxRangeDays = defaultMaxRangeDays
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:         params.Repo,
		metrics:      params.Metrics,
		maxRangeDays: params.MaxRangeDays,
		now:          params.Now,
	}, nil
}

// Suggest resolves the schedules in the requested range and plans suggestions
// for them.
func (s *service) Suggest(ctx context.Context, params SuggestParams) (*PlanResult, error) {
	if params.StartDate.IsZero() || params.EndDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required")
	}
	if params.EndDate.Before(params.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}
	if params.EndDate.Sub(params.StartDate) > time.Duration(s.maxRangeDays)*24*time.Hour {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date range too wide").
			WithDetails(map[string]any{"max_days": s.maxRangeDays})
	}

	started := time.Now()
	defer func() {
		s.metrics.ObserveDuration("suggest", time.Since(started))
	}()

	schedules, err := s.repo.ListSchedulesInRange(ctx, params.StartDate, params.EndDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing schedules")
	}

	ids := make([]uuid.UUID, 0, len(schedules))
	for _, schedule := range schedules {
		ids = append(ids, schedule.ID)
	}

	plan, err := s.Plan(ctx, ids, params.MinistryID)
	if err != nil {
		return nil, err
	}
	s.metrics.AddSuggestions(plan.Stats.TotalSuggestions)
	return plan, nil
}

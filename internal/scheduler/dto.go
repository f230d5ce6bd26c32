package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// CandidateSuggestion is one ranked volunteer recommendation for a slot.
type CandidateSuggestion struct {
	UserID       uuid.UUID  `json:"user_id"`
	UserName     string     `json:"user_name"`
	FunctionID   *uuid.UUID `json:"function_id,omitempty"`
	FunctionName *string    `json:"function_name,omitempty"`
	Score        int        `json:"score"`
	Reasons      []string   `json:"reasons"`
}

// ScheduleSuggestion groups every candidate recommendation for one schedule.
// Function-based slots and general slots both land in the same record.
type ScheduleSuggestion struct {
	ScheduleID   uuid.UUID             `json:"schedule_id"`
	ScheduleName string                `json:"schedule_name"`
	ScheduleDate time.Time             `json:"schedule_date"`
	Suggestions  []CandidateSuggestion `json:"suggestions"`
}

// DistributionStats summarizes one planning batch. Derived, never persisted.
type DistributionStats struct {
	TotalSchedules   int     `json:"total_schedules"`
	TotalSuggestions int     `json:"total_suggestions"`
	AvgScore         float64 `json:"avg_score"`
}

// PlanResult is the full output of a planning batch.
type PlanResult struct {
	Suggestions []ScheduleSuggestion `json:"suggestions"`
	Stats       DistributionStats    `json:"stats"`
}

// ApplyResult reports what the commit engine achieved, including per-volunteer
// failures that did not abort the batch.
type ApplyResult struct {
	AssignmentsCreated int      `json:"assignments_created"`
	Errors             []string `json:"errors"`
}

// ValidationResult is the outcome of a conflict pre-check.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ScoreResult carries the numeric suitability estimate plus the human-readable
// justification list, in the order the criteria were evaluated.
type ScoreResult struct {
	Total   int      `json:"total"`
	Reasons []string `json:"reasons"`
}

// SuggestParams bounds a suggest request to a date range and optional ministry.
type SuggestParams struct {
	StartDate  time.Time
	EndDate    time.Time
	MinistryID *uuid.UUID
}

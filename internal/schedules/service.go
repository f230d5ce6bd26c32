package schedules

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Service defines the behavior needed by the schedules controller.
type Service interface {
	Create(ctx context.Context, req CreateScheduleRequest) (*ScheduleDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ScheduleDTO, error)
	ListRange(ctx context.Context, from, to time.Time) ([]ScheduleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)

	ListAssignments(ctx context.Context, scheduleID uuid.UUID) ([]AssignmentDTO, error)
	Respond(ctx context.Context, assignmentID, actorID uuid.UUID, req RespondRequest) error
	RemoveAssignment(ctx context.Context, assignmentID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs the schedules service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schedules repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateScheduleRequest) (*ScheduleDTO, error) {
	if req.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	scheduleType := req.Type
	if scheduleType == "" {
		scheduleType = enums.ScheduleTypeStandalone
	}
	if !scheduleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid schedule type")
	}

	schedule := &models.Schedule{
		Date:       req.Date,
		Name:       req.Name,
		Type:       scheduleType,
		ServiceID:  req.ServiceID,
		EventID:    req.EventID,
		LocationID: req.LocationID,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create schedule")
	}
	return scheduleFromModel(schedule), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ScheduleDTO, error) {
	schedule, err := s.repo.Get(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load schedule")
	}
	return scheduleFromModel(schedule), nil
}

func (s *service) ListRange(ctx context.Context, from, to time.Time) ([]ScheduleDTO, error) {
	if from.IsZero() || to.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required")
	}
	if to.Before(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}
	schedules, err := s.repo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list schedules")
	}
	dtos := make([]ScheduleDTO, 0, len(schedules))
	for i := range schedules {
		dtos = append(dtos, *scheduleFromModel(&schedules[i]))
	}
	return dtos, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "schedule not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete schedule")
	}
	return nil
}

// Generate materializes dated occurrences for a recurring weekly service over
// the requested range. Days that already have an occurrence are skipped.
func (s *service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	template, err := s.repo.GetService(ctx, req.ServiceID)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load service")
	}
	if !template.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service is not active")
	}

	hour, minute, err := parseStartTime(template.StartTime)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse service start time")
	}

	result := &GenerateResult{Schedules: []ScheduleDTO{}}
	day := time.Date(req.StartDate.Year(), req.StartDate.Month(), req.StartDate.Day(), 0, 0, 0, 0, req.StartDate.Location())
	for !day.After(req.EndDate) {
		if int(day.Weekday()) != template.Weekday {
			day = day.AddDate(0, 0, 1)
			continue
		}
		exists, err := s.repo.ExistsForServiceOn(ctx, template.ID, day)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing occurrence")
		}
		if !exists {
			name := template.Name
			schedule := &models.Schedule{
				Date:      day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
				Name:      &name,
				Type:      enums.ScheduleTypeService,
				ServiceID: &template.ID,
			}
			if err := s.repo.Create(ctx, schedule); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create occurrence")
			}
			result.SchedulesCreated++
			result.Schedules = append(result.Schedules, *scheduleFromModel(schedule))
		}
		day = day.AddDate(0, 0, 7)
	}
	return result, nil
}

func (s *service) ListAssignments(ctx context.Context, scheduleID uuid.UUID) ([]AssignmentDTO, error) {
	if _, err := s.Get(ctx, scheduleID); err != nil {
		return nil, err
	}
	assignments, err := s.repo.ListAssignments(ctx, scheduleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list assignments")
	}
	return assignments, nil
}

// Respond records a member's confirm or decline on their own assignment.
func (s *service) Respond(ctx context.Context, assignmentID, actorID uuid.UUID, req RespondRequest) error {
	if req.Status != enums.AssignmentStatusConfirmed && req.Status != enums.AssignmentStatusDeclined {
		return pkgerrors.New(pkgerrors.CodeValidation, "status must be confirmed or declined")
	}

	assignment, err := s.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load assignment")
	}
	if assignment.UserID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "can only respond to your own assignment")
	}

	if err := s.repo.UpdateAssignmentStatus(ctx, assignmentID, string(req.Status)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update assignment status")
	}
	return nil
}

func (s *service) RemoveAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	if err := s.repo.DeleteAssignment(ctx, assignmentID); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete assignment")
	}
	return nil
}

// parseStartTime splits an "HH:MM" clock string.
func parseStartTime(value string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid start time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid start time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid start time %q", value)
	}
	return hour, minute, nil
}

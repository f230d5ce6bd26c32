package events

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Service defines the behavior needed by the events controller.
type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*EventDTO, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error)
	ListEvents(ctx context.Context) ([]EventDTO, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	CreateTemplate(ctx context.Context, req CreateServiceTemplateRequest) (*ServiceTemplateDTO, error)
	ListTemplates(ctx context.Context) ([]ServiceTemplateDTO, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, req UpdateServiceTemplateRequest) (*ServiceTemplateDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the events service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("events repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventDTO, error) {
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event cannot end before it starts")
	}
	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		LocationID:  req.LocationID,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create event")
	}
	return eventFromModel(event), nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load event")
	}
	return eventFromModel(event), nil
}

func (s *service) ListEvents(ctx context.Context) ([]EventDTO, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list events")
	}
	dtos := make([]EventDTO, 0, len(events))
	for i := range events {
		dtos = append(dtos, *eventFromModel(&events[i]))
	}
	return dtos, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete event")
	}
	return nil
}

func (s *service) CreateTemplate(ctx context.Context, req CreateServiceTemplateRequest) (*ServiceTemplateDTO, error) {
	if err := validateClock(req.StartTime); err != nil {
		return nil, err
	}
	template := &models.ChurchService{
		Name:      req.Name,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		Active:    true,
	}
	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create service template")
	}
	return templateFromModel(template), nil
}

func (s *service) ListTemplates(ctx context.Context) ([]ServiceTemplateDTO, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list service templates")
	}
	dtos := make([]ServiceTemplateDTO, 0, len(templates))
	for i := range templates {
		dtos = append(dtos, *templateFromModel(&templates[i]))
	}
	return dtos, nil
}

func (s *service) UpdateTemplate(ctx context.Context, id uuid.UUID, req UpdateServiceTemplateRequest) (*ServiceTemplateDTO, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Weekday != nil {
		if *req.Weekday < 0 || *req.Weekday > 6 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "weekday must be between 0 and 6")
		}
		updates["weekday"] = *req.Weekday
	}
	if req.StartTime != nil {
		if err := validateClock(*req.StartTime); err != nil {
			return nil, err
		}
		updates["start_time"] = *req.StartTime
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	template, err := s.repo.UpdateTemplate(ctx, id, updates)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service template not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update service template")
	}
	return templateFromModel(template), nil
}

func validateClock(value string) error {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "start time must be HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return pkgerrors.New(pkgerrors.CodeValidation, "start time must be HH:MM")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return pkgerrors.New(pkgerrors.CodeValidation, "start time must be HH:MM")
	}
	return nil
}

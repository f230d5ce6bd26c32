package members

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
	"github.com/ecclesia-app/ecclesia-backend/pkg/pagination"
)

// Service defines the behavior needed by the members controller.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*MemberDTO, error)
	List(ctx context.Context, params pagination.Params) (*MemberPage, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateMemberRequest) (*MemberDTO, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	GetAvailability(ctx context.Context, userID uuid.UUID) ([]AvailabilityEntry, error)
	SetAvailability(ctx context.Context, userID uuid.UUID, req SetAvailabilityRequest) ([]AvailabilityEntry, error)
}

type memberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, params pagination.Params) ([]models.User, string, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateMemberRequest) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ListAvailability(ctx context.Context, userID uuid.UUID) ([]models.UserAvailability, error)
	ReplaceAvailability(ctx context.Context, userID uuid.UUID, entries []AvailabilityEntry) error
}

type service struct {
	repo memberRepository
}

// NewService constructs the members service.
func NewService(repo memberRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("members repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*MemberDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load member")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*MemberPage, error) {
	users, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list members")
	}
	page := &MemberPage{Members: make([]MemberDTO, 0, len(users)), NextCursor: next}
	for i := range users {
		page.Members = append(page.Members, *FromModel(&users[i]))
	}
	return page, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateMemberRequest) (*MemberDTO, error) {
	user, err := s.repo.UpdateProfile(ctx, id, req)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update member")
	}
	return FromModel(user), nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set member active flag")
	}
	return nil
}

func (s *service) GetAvailability(ctx context.Context, userID uuid.UUID) ([]AvailabilityEntry, error) {
	rows, err := s.repo.ListAvailability(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list availability")
	}
	return availabilityFromModels(rows), nil
}

func (s *service) SetAvailability(ctx context.Context, userID uuid.UUID, req SetAvailabilityRequest) ([]AvailabilityEntry, error) {
	seen := map[int]bool{}
	for _, entry := range req.Entries {
		if entry.Weekday < 0 || entry.Weekday > 6 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "weekday must be between 0 and 6")
		}
		if seen[entry.Weekday] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate weekday in availability")
		}
		seen[entry.Weekday] = true
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load member")
	}

	entries := append([]AvailabilityEntry(nil), req.Entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Weekday < entries[j].Weekday })

	if err := s.repo.ReplaceAvailability(ctx, userID, entries); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace availability")
	}
	return entries, nil
}

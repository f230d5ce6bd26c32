package ministries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db"
	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
)

// Service defines the behavior needed by the ministries controller.
type Service interface {
	Create(ctx context.Context, req CreateMinistryRequest) (*MinistryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*MinistryDTO, error)
	List(ctx context.Context) ([]MinistryDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateMinistryRequest) (*MinistryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddFunction(ctx context.Context, ministryID uuid.UUID, req CreateFunctionRequest) (*FunctionDTO, error)
	ListFunctions(ctx context.Context, ministryID uuid.UUID) ([]FunctionDTO, error)
	RemoveFunction(ctx context.Context, ministryID, functionID uuid.UUID) error

	AddMember(ctx context.Context, ministryID uuid.UUID, req AddMemberRequest) (*MembershipDTO, error)
	ListMembers(ctx context.Context, ministryID uuid.UUID) ([]MembershipDTO, error)
	UpdateMember(ctx context.Context, ministryID, userID uuid.UUID, req UpdateMembershipRequest) error
	RemoveMember(ctx context.Context, ministryID, userID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs the ministries service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ministries repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateMinistryRequest) (*MinistryDTO, error) {
	ministry := &models.Ministry{
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    req.LeaderID,
	}
	if err := s.repo.CreateMinistry(ctx, ministry); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "ministry name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create ministry")
	}
	return ministryFromModel(ministry), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*MinistryDTO, error) {
	ministry, err := s.repo.GetMinistry(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ministry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ministry")
	}
	return ministryFromModel(ministry), nil
}

func (s *service) List(ctx context.Context) ([]MinistryDTO, error) {
	ministries, err := s.repo.ListMinistries(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ministries")
	}
	dtos := make([]MinistryDTO, 0, len(ministries))
	for i := range ministries {
		dtos = append(dtos, *ministryFromModel(&ministries[i]))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateMinistryRequest) (*MinistryDTO, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LeaderID != nil {
		updates["leader_id"] = *req.LeaderID
	}

	ministry, err := s.repo.UpdateMinistry(ctx, id, updates)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ministry not found")
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "ministry name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ministry")
	}
	return ministryFromModel(ministry), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteMinistry(ctx, id); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ministry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete ministry")
	}
	return nil
}

func (s *service) AddFunction(ctx context.Context, ministryID uuid.UUID, req CreateFunctionRequest) (*FunctionDTO, error) {
	if _, err := s.Get(ctx, ministryID); err != nil {
		return nil, err
	}
	function := &models.MinistryFunction{
		MinistryID: ministryID,
		Name:       req.Name,
	}
	if err := s.repo.CreateFunction(ctx, function); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create function")
	}
	return functionFromModel(function), nil
}

func (s *service) ListFunctions(ctx context.Context, ministryID uuid.UUID) ([]FunctionDTO, error) {
	functions, err := s.repo.ListFunctions(ctx, ministryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list functions")
	}
	dtos := make([]FunctionDTO, 0, len(functions))
	for i := range functions {
		dtos = append(dtos, *functionFromModel(&functions[i]))
	}
	return dtos, nil
}

func (s *service) RemoveFunction(ctx context.Context, ministryID, functionID uuid.UUID) error {
	if err := s.repo.DeleteFunction(ctx, ministryID, functionID); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "function not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete function")
	}
	return nil
}

func (s *service) AddMember(ctx context.Context, ministryID uuid.UUID, req AddMemberRequest) (*MembershipDTO, error) {
	if _, err := s.Get(ctx, ministryID); err != nil {
		return nil, err
	}
	if req.FunctionID != nil {
		if err := s.functionBelongs(ctx, ministryID, *req.FunctionID); err != nil {
			return nil, err
		}
	}

	membership := &models.MinistryMembership{
		MinistryID: ministryID,
		UserID:     req.UserID,
		FunctionID: req.FunctionID,
		Status:     enums.MembershipStatusActive,
	}
	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "member already belongs to this ministry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership")
	}
	return &MembershipDTO{
		ID:         membership.ID,
		MinistryID: membership.MinistryID,
		UserID:     membership.UserID,
		FunctionID: membership.FunctionID,
		Status:     membership.Status,
		CreatedAt:  membership.CreatedAt,
	}, nil
}

func (s *service) ListMembers(ctx context.Context, ministryID uuid.UUID) ([]MembershipDTO, error) {
	memberships, err := s.repo.ListMemberships(ctx, ministryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list memberships")
	}
	return memberships, nil
}

func (s *service) UpdateMember(ctx context.Context, ministryID, userID uuid.UUID, req UpdateMembershipRequest) error {
	updates := map[string]any{}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid membership status")
		}
		updates["status"] = *req.Status
	}
	if req.FunctionID != nil {
		if err := s.functionBelongs(ctx, ministryID, *req.FunctionID); err != nil {
			return err
		}
		updates["function_id"] = *req.FunctionID
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if err := s.repo.UpdateMembership(ctx, ministryID, userID, updates); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update membership")
	}
	return nil
}

func (s *service) RemoveMember(ctx context.Context, ministryID, userID uuid.UUID) error {
	if err := s.repo.DeleteMembership(ctx, ministryID, userID); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete membership")
	}
	return nil
}

func (s *service) functionBelongs(ctx context.Context, ministryID, functionID uuid.UUID) error {
	functions, err := s.repo.ListFunctions(ctx, ministryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list functions")
	}
	for _, function := range functions {
		if function.ID == functionID {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "function does not belong to this ministry")
}

package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/api/responses"
	"github.com/ecclesia-app/ecclesia-backend/api/validators"
	"github.com/ecclesia-app/ecclesia-backend/internal/scheduler"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
	"github.com/ecclesia-app/ecclesia-backend/pkg/logger"
)

const suggestDateLayout = "2006-01-02"

// SchedulerSuggestRequest bounds an auto-assignment run to a date window and
// optionally to a single ministry.
type SchedulerSuggestRequest struct {
	StartDate  string     `json:"start_date" validate:"required"`
	EndDate    string     `json:"end_date" validate:"required"`
	MinistryID *uuid.UUID `json:"ministry_id,omitempty"`
}

// SchedulerApplyRequest commits previously generated suggestions.
type SchedulerApplyRequest struct {
	Suggestions []scheduler.ScheduleSuggestion `json:"suggestions" validate:"required,min=1"`
}

// SchedulerValidateRequest pre-checks one volunteer against one schedule.
type SchedulerValidateRequest struct {
	ScheduleID uuid.UUID `json:"schedule_id" validate:"required"`
	UserID     uuid.UUID `json:"user_id" validate:"required"`
}

func SchedulerSuggest(svc scheduler.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SchedulerSuggestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, err := time.Parse(suggestDateLayout, body.StartDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "start_date must be a date (YYYY-MM-DD)"))
			return
		}
		end, err := time.Parse(suggestDateLayout, body.EndDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "end_date must be a date (YYYY-MM-DD)"))
			return
		}

		plan, err := svc.Suggest(r.Context(), scheduler.SuggestParams{
			StartDate:  start,
			EndDate:    end,
			MinistryID: body.MinistryID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

func SchedulerApply(svc scheduler.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SchedulerApplyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Apply(r.Context(), body.Suggestions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func SchedulerValidate(svc scheduler.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body SchedulerValidateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Validate(r.Context(), body.ScheduleID, body.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

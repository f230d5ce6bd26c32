package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecclesia-app/ecclesia-backend/api/responses"
	"github.com/ecclesia-app/ecclesia-backend/api/validators"
	"github.com/ecclesia-app/ecclesia-backend/internal/ministries"
	"github.com/ecclesia-app/ecclesia-backend/pkg/logger"
)

func MinistryCreate(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ministries.CreateMinistryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ministry, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ministry)
	}
}

func MinistryList(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func MinistryDetail(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ministry, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ministry)
	}
}

func MinistryUpdate(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ministries.UpdateMinistryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ministry, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ministry)
	}
}

func MinistryDelete(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func MinistryAddFunction(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ministryID, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ministries.CreateFunctionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		function, err := svc.AddFunction(r.Context(), ministryID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, function)
	}
}

func MinistryListFunctions(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ministryID, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		functions, err := svc.ListFunctions(r.Context(), ministryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, functions)
	}
}

func MinistryRemoveFunction(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ministryID, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		functionID, err := validators.ParsePathUUID(chi.URLParam(r, "functionId"), "functionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveFunction(r.Context(), ministryID, functionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func MinistryAddMember(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ministryID, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ministries.AddMemberRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membership, err := svc.AddMember(r.Context(), ministryID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, membership)
	}
}

func MinistryListMembers(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ministryID, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roster, err := svc.ListMembers(r.Context(), ministryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, roster)
	}
}

func MinistryUpdateMember(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ministryID, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ministries.UpdateMembershipRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateMember(r.Context(), ministryID, userID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func MinistryRemoveMember(svc ministries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ministryID, err := validators.ParsePathUUID(chi.URLParam(r, "ministryId"), "ministryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveMember(r.Context(), ministryID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

package controllers

import (
	"net/http"

	"github.com/luisortegam/fieldvisits-backend/api/responses"
	"github.com/luisortegam/fieldvisits-backend/api/validators"
	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
	"github.com/luisortegam/fieldvisits-backend/pkg/types"
)

type updateVisitRequest struct {
	VisitType *string            `json:"visit_type,omitempty"`
	Status    *string            `json:"status,omitempty"`
	BranchID  types.NullableUUID `json:"branch_id,omitempty"`
}

// ListVisits returns visits filtered by operator and date range.
func ListVisits(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visits service unavailable"))
			return
		}

		operatorID, err := validators.OptionalQueryUUID(r, "operator_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.OptionalQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.OptionalQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListVisits(r.Context(), visits.ListVisitsInput{
			OperatorID: operatorID,
			From:       from,
			To:         to,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetVisit returns one visit.
func GetVisit(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visits service unavailable"))
			return
		}

		visitID, err := validators.PathUUID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visit, err := svc.GetVisit(r.Context(), visitID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

// UpdateVisit patches a visit's type or status.
func UpdateVisit(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visits service unavailable"))
			return
		}

		visitID, err := validators.PathUUID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVisitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := visits.UpdateVisitInput{}
		if payload.VisitType != nil {
			visitType, parseErr := enums.ParseVisitType(*payload.VisitType)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid visit_type"))
				return
			}
			input.VisitType = &visitType
		}
		if payload.Status != nil {
			status, parseErr := enums.ParseVisitStatus(*payload.Status)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			input.Status = &status
		}
		input.Branch = payload.BranchID

		visit, err := svc.UpdateVisit(r.Context(), visitID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

// DeleteVisit removes a visit permanently.
func DeleteVisit(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visits service unavailable"))
			return
		}

		visitID, err := validators.PathUUID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVisit(r.Context(), visitID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

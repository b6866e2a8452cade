package controllers

import (
	"net/http"
	"strings"

	"github.com/luisortegam/fieldvisits-backend/api/responses"
	"github.com/luisortegam/fieldvisits-backend/api/validators"
	"github.com/luisortegam/fieldvisits-backend/internal/schedule"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
)

// ResolveAssignment is the calendar drop entry point: selecting an
// operator, scheduling a customer or branch visit, or moving an
// existing visit.
func ResolveAssignment(svc *schedule.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}

		var payload schedule.AssignmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ResolveAssignment(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := http.StatusOK
		if result.Visit != nil && result.Outcome == string(schedule.OutcomeVisitCreated) {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

// TransferMonth replicates an operator's month into the next one.
func TransferMonth(svc *schedule.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}

		var payload schedule.TransferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.TransferMonth(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CalendarMonth projects one month of visits for the calendar grid.
func CalendarMonth(svc *schedule.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "schedule service unavailable"))
			return
		}

		raw := strings.TrimSpace(r.URL.Query().Get("month"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "month query parameter required"))
			return
		}
		month, err := schedule.ParseMonth(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid month (expected YYYY-MM)"))
			return
		}

		operatorID, err := validators.OptionalQueryUUID(r, "operator_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		calendar, err := svc.CalendarMonth(r.Context(), month, operatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, calendar)
	}
}

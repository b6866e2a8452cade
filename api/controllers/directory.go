package controllers

import (
	"net/http"
	"strings"

	"github.com/luisortegam/fieldvisits-backend/api/responses"
	"github.com/luisortegam/fieldvisits-backend/api/validators"
	"github.com/luisortegam/fieldvisits-backend/internal/directory"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
	"github.com/luisortegam/fieldvisits-backend/pkg/pagination"
)

// ListOperators returns the active operators for the sidebar.
func ListOperators(svc *directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}
		operators, err := svc.ListOperators(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, operators)
	}
}

// ListCustomers returns one cursor page of customers.
func ListCustomers(svc *directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}

		limit, err := validators.QueryLimit(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		result, err := svc.ListCustomers(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListCustomerBranches returns the branches of one customer.
func ListCustomerBranches(svc *directory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}

		customerID, err := validators.PathUUID(r, "customerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		branches, err := svc.ListBranches(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, branches)
	}
}

package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
)

const queryDateLayout = "2006-01-02"

// PathUUID parses a required uuid route parameter.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s", name))
	}
	return parsed, nil
}

// OptionalQueryUUID parses an optional uuid query parameter, returning
// nil when absent.
func OptionalQueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s", name))
	}
	return &parsed, nil
}

// OptionalQueryDate parses an optional YYYY-MM-DD query parameter.
func OptionalQueryDate(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s (expected YYYY-MM-DD)", name))
	}
	return parsed, nil
}

// QueryLimit parses an optional positive limit query parameter.
func QueryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit")
	}
	return limit, nil
}

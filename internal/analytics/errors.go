package analytics

import (
	"errors"
	"net/http"
)

// Pipeline errors.
var (
	// ErrEmptyInput indicates the filtered table had zero rows. Aggregations
	// still return well-formed empty results; callers that must distinguish
	// an empty pass (report persistence, widgets) check for this value.
	ErrEmptyInput = errors.New("filtered table is empty")
	// ErrInvalidRange indicates start_date is after end_date. Surfaced
	// before filtering executes.
	ErrInvalidRange = errors.New("start date is after end date")
	// ErrMissingField indicates a required field is absent from the input
	// table. Raised at pipeline entry, never mid-aggregation.
	ErrMissingField = errors.New("required field missing")
	// ErrNoMode indicates a mode was requested over an empty distribution.
	ErrNoMode = errors.New("no mode for empty distribution")
)

// MapHTTPStatus maps analytics errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrMissingField) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrNoMode) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

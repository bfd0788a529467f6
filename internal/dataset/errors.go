package dataset

import (
	"errors"
	"net/http"
)

// Domain errors for dataset operations.
var (
	ErrNotFound       = errors.New("dataset entry not found")
	ErrDuplicate      = errors.New("dataset entry already exists")
	ErrInvalidID      = errors.New("invalid entry id")
	ErrInvalidRequest = errors.New("invalid request body")
)

// MapHTTPStatus maps dataset domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) || errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

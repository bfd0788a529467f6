package snapshots

import (
	"errors"
	"net/http"
)

// Domain errors for snapshot operations.
var (
	ErrNotFound  = errors.New("snapshot not found")
	ErrDuplicate = errors.New("snapshot already exists")
	ErrInvalidID = errors.New("invalid snapshot id")
)

// MapHTTPStatus maps snapshot domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

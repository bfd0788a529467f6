package feedback

import (
	"errors"
	"net/http"

	"github.com/verdict-ml/verdict/internal/classifier"
)

// Domain errors for feedback operations.
var (
	ErrNoHistory   = errors.New("no classifications to review")
	ErrNoSelection = errors.New("select yes or no before submitting")
	ErrNoSession   = errors.New("no session on request")
)

// MapHTTPStatus maps feedback errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoHistory) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNoSelection) {
		return http.StatusBadRequest
	}
	if errors.Is(err, classifier.ErrArtifactMissing) || errors.Is(err, classifier.ErrArtifactInvalid) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

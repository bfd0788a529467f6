package classify

import (
	"errors"
	"net/http"

	"github.com/verdict-ml/verdict/internal/classifier"
)

// Domain errors for classification operations.
var (
	ErrEmptyInput     = errors.New("please enter some text to classify")
	ErrEmptyBatch     = errors.New("no texts provided")
	ErrInvalidRequest = errors.New("invalid request body")
	ErrClassification = errors.New("classification failed")
	ErrNoSession      = errors.New("no session on request")
)

// MapHTTPStatus maps classification errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrEmptyBatch) || errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, classifier.ErrArtifactMissing) || errors.Is(err, classifier.ErrArtifactInvalid) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

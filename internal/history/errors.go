package history

import (
	"errors"
	"net/http"

	"github.com/verdict-ml/verdict/internal/classifier"
)

// ErrNoSession indicates the session middleware did not run for this request.
var ErrNoSession = errors.New("no session on request")

// MapHTTPStatus maps history errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, classifier.ErrArtifactMissing) || errors.Is(err, classifier.ErrArtifactInvalid) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

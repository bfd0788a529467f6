package classifier

import "errors"

// Domain errors for model loading and label resolution.
var (
	ErrArtifactMissing = errors.New("model artifact not found")
	ErrArtifactInvalid = errors.New("invalid model artifact")
	ErrUnknownClass    = errors.New("predicted class has no label")
)

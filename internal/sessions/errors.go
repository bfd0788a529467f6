package sessions

import "errors"

// ErrEmptyHistory is returned by operations that require at least one
// stored classification.
var ErrEmptyHistory = errors.New("session history is empty")

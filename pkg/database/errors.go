package database

import "errors"

// ErrNotReady is returned when a connection is requested before Start
// has opened and verified the pool.
var ErrNotReady = errors.New("database not ready")

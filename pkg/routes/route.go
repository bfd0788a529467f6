package routes

import "net/http"

// Route binds one HTTP method and path pattern to its handler. The
// pattern is relative to the enclosing Group's prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

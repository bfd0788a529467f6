// Package routes provides declarative route group registration for net/http.
package routes

import "net/http"

// Group collects routes under a shared prefix. Children nest, each
// extending the accumulated prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register installs every route in the given groups on the mux using
// method-qualified patterns ("GET /history/export").
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		group.register(mux, "")
	}
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, route := range g.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}

// Package app serves the classifier web UI: a single page that drives the
// classification, history, and feedback endpoints.
package app

import (
	"embed"
	"net/http"

	"github.com/verdict-ml/verdict/pkg/module"
	"github.com/verdict-ml/verdict/pkg/web"
)

//go:embed layouts/*.html
var layoutFS embed.FS

//go:embed views/*.html
var viewFS embed.FS

//go:embed static/*
var staticFS embed.FS

var classifierView = web.ViewDef{
	Route:    "/{$}",
	Template: "classifier.html",
	Title:    "News Classifier",
	Bundle:   "app",
}

// viewModel is the page-specific template data. APIBase tells the client
// script where the classification API is mounted.
type viewModel struct {
	APIBase string
}

// NewModule creates the UI module served at basePath. Fetch calls from the
// rendered page resolve against apiBase.
func NewModule(basePath, apiBase string) (*module.Module, error) {
	ts, err := web.NewTemplateSet(layoutFS, viewFS, "layouts/*.html", "views", basePath, []web.ViewDef{classifierView})
	if err != nil {
		return nil, err
	}

	page := pageHandler(ts, basePath, apiBase)

	router := web.NewRouter()
	router.HandleFunc("GET "+classifierView.Route, page)
	router.HandleFunc("GET /static/", web.DistServer(staticFS, "static", "/static/"))
	for _, rt := range web.PublicFileRoutes(staticFS, "static", "favicon.svg") {
		router.HandleFunc(rt.Method+" "+rt.Pattern, rt.Handler)
	}
	router.SetFallback(page)

	return module.New(basePath, router), nil
}

func pageHandler(ts *web.TemplateSet, basePath, apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := web.ViewData{
			Title:    classifierView.Title,
			Bundle:   classifierView.Bundle,
			BasePath: basePath,
			Data:     viewModel{APIBase: apiBase},
		}
		if err := ts.Render(w, "base", classifierView.Template, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

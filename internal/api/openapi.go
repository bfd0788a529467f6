package api

import (
	"net/http"

	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the routes actually
// registered: dataset and snapshot paths appear only when those
// features are enabled.
func buildSpec(cfg *config.Config, domain *Domain) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.Docs.Title, cfg.Version)
	spec.SetDescription(cfg.API.Docs.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Record": {
			Type:        "object",
			Description: "One stored classification result",
			Properties: map[string]*openapi.Schema{
				"text":       {Type: "string", Description: "Classified article text"},
				"label":      {Type: "string", Enum: []any{"FAKE", "REAL"}},
				"confidence": {Type: "number", Description: "Top class probability; 0 when unavailable", Example: 0.8},
				"timestamp":  {Type: "string", Example: "2026-01-15 09:30:00"},
				"feedback":   {Type: "string", Description: "Set to Incorrect when the user disputes the result"},
			},
		},
		"ClassifyRequest": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"text": {Type: "string", Description: "Article text to classify"},
			},
		},
		"BatchRequest": {
			Type:     "object",
			Required: []string{"texts"},
			Properties: map[string]*openapi.Schema{
				"texts": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"BatchItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"record": openapi.SchemaRef("Record"),
				"error":  {Type: "string", Description: "Set when this text failed; nothing was appended"},
			},
		},
		"HistoryEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"label":          {Type: "string"},
				"confidence":     {Type: "number"},
				"confidence_pct": {Type: "string", Example: "94.1%"},
				"timestamp":      {Type: "string"},
				"preview":        {Type: "string", Description: "First 100 characters plus ellipsis"},
				"feedback":       {Type: "string"},
			},
		},
		"HistoryView": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"show_history": {Type: "boolean"},
				"count":        {Type: "integer", Description: "Full history size"},
				"entries": {
					Type:        "array",
					Description: "At most 10 records, newest first",
					Items:       openapi.SchemaRef("HistoryEntry"),
				},
			},
		},
		"FeedbackRequest": {
			Type:     "object",
			Required: []string{"correct"},
			Properties: map[string]*openapi.Schema{
				"correct": {Type: "boolean", Description: "Whether the most recent classification was right"},
			},
		},
		"FeedbackReceipt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"recorded": {Type: "boolean"},
				"message":  {Type: "string"},
			},
		},
		"ModelInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"algorithm":           {Type: "string", Enum: []any{"multinomial_nb", "nearest_centroid"}},
				"classes":             {Type: "integer"},
				"vocabulary_size":     {Type: "integer"},
				"artifact_path":       {Type: "string"},
				"artifact_size":       {Type: "integer"},
				"artifact_size_human": {Type: "string", Example: "1.2MB"},
				"loaded_at":           {Type: "string", Format: "date-time"},
			},
		},
		"Health": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status":            {Type: "string", Enum: []any{"ok", "degraded"}},
				"version":           {Type: "string"},
				"model_loaded":      {Type: "boolean"},
				"model_error":       {Type: "string"},
				"dataset_enabled":   {Type: "boolean"},
				"snapshots_enabled": {Type: "boolean"},
			},
		},
	})

	spec.Components.AddResponses(map[string]*openapi.Response{
		"ModelUnavailable": {
			Description: "No model artifact is loaded; classification features are disabled",
			Content: map[string]*openapi.MediaType{
				"application/json": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"error": {Type: "string"},
						},
					},
				},
			},
		},
	})

	addClassifyPaths(spec)
	addHistoryPaths(spec)
	addFeedbackPaths(spec)
	addModelPaths(spec)

	if domain.Dataset != nil {
		addDatasetPaths(spec)
	}
	if domain.Snapshots != nil {
		addSnapshotPaths(spec)
	}

	return spec
}

func addClassifyPaths(spec *openapi.Spec) {
	spec.Paths["/classify"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Classify article text",
			Tags:        []string{"classify"},
			RequestBody: openapi.RequestBodyJSON("ClassifyRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:                 openapi.ResponseJSON("Classification appended to session history", "Record"),
				http.StatusBadRequest:         openapi.ResponseRef("BadRequest"),
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
	}

	spec.Paths["/classify/batch"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Classify multiple texts",
			Description: "Per-text outcomes are independent; successes land in session history in submission order.",
			Tags:        []string{"classify"},
			RequestBody: openapi.RequestBodyJSON("BatchRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "Per-text outcomes in submission order",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type:  "array",
								Items: openapi.SchemaRef("BatchItem"),
							},
						},
					},
				},
				http.StatusBadRequest:         openapi.ResponseRef("BadRequest"),
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
	}
}

func addHistoryPaths(spec *openapi.Spec) {
	spec.Paths["/history"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "View session history",
			Tags:    []string{"history"},
			Responses: map[int]*openapi.Response{
				http.StatusOK:                 openapi.ResponseJSON("Viewer state", "HistoryView"),
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
		Delete: &openapi.Operation{
			Summary: "Clear session history",
			Tags:    []string{"history"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "Number of removed records",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type: "object",
								Properties: map[string]*openapi.Schema{
									"cleared": {Type: "integer"},
								},
							},
						},
					},
				},
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
	}

	spec.Paths["/history/toggle"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Toggle history visibility",
			Tags:    []string{"history"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "New visibility state",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type: "object",
								Properties: map[string]*openapi.Schema{
									"show_history": {Type: "boolean"},
								},
							},
						},
					},
				},
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
	}

	spec.Paths["/history/export"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Export session history",
			Description: "Streams the full history, not just the visible window, as classification_history.csv.",
			Tags:        []string{"history"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "CSV attachment with columns text, label, confidence, timestamp, feedback",
					Content: map[string]*openapi.MediaType{
						"text/csv": {Schema: &openapi.Schema{Type: "string"}},
					},
				},
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
	}
}

func addFeedbackPaths(spec *openapi.Spec) {
	spec.Paths["/feedback"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Submit feedback on the most recent classification",
			Description: "A false verdict annotates the latest record as Incorrect; a true verdict is acknowledged without being stored.",
			Tags:        []string{"feedback"},
			RequestBody: openapi.RequestBodyJSON("FeedbackRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:                 openapi.ResponseJSON("Feedback receipt", "FeedbackReceipt"),
				http.StatusBadRequest:         openapi.ResponseRef("BadRequest"),
				http.StatusConflict:           openapi.ResponseRef("Conflict"),
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
	}
}

func addModelPaths(spec *openapi.Spec) {
	spec.Paths["/model"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Loaded model metadata",
			Tags:    []string{"model"},
			Responses: map[int]*openapi.Response{
				http.StatusOK:                 openapi.ResponseJSON("Artifact metadata", "ModelInfo"),
				http.StatusServiceUnavailable: openapi.ResponseRef("ModelUnavailable"),
			},
		},
	}

	spec.Paths["/health"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Service health",
			Tags:    []string{"model"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Health report; degraded when no model is loaded", "Health"),
			},
		},
	}
}

func addDatasetPaths(spec *openapi.Spec) {
	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"DatasetEntry": {
			Type:        "object",
			Description: "A disputed classification captured for retraining",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"session_id":      {Type: "string"},
				"text":            {Type: "string"},
				"predicted_label": {Type: "string"},
				"confidence":      {Type: "number"},
				"created_at":      {Type: "string", Format: "date-time"},
				"validated_by":    {Type: "string"},
				"validated_at":    {Type: "string", Format: "date-time"},
			},
		},
		"ValidateCommand": {
			Type:     "object",
			Required: []string{"validated_by"},
			Properties: map[string]*openapi.Schema{
				"validated_by": {Type: "string", Description: "Reviewer identity"},
			},
		},
	})

	spec.Paths["/dataset"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List dataset entries",
			Tags:    []string{"dataset"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Text search", false),
				openapi.QueryParam("predicted_label", "string", "Filter by predicted label", false),
				openapi.QueryParam("session_id", "string", "Filter by session", false),
				openapi.QueryParam("pending", "boolean", "Only entries awaiting validation", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "Paginated dataset entries",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type: "object",
								Properties: map[string]*openapi.Schema{
									"data":        {Type: "array", Items: openapi.SchemaRef("DatasetEntry")},
									"total":       {Type: "integer"},
									"page":        {Type: "integer"},
									"page_size":   {Type: "integer"},
									"total_pages": {Type: "integer"},
								},
							},
						},
					},
				},
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/dataset/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search dataset entries",
			Tags:        []string{"dataset"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Paginated dataset entries", "DatasetEntry"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/dataset/export"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Export the full dataset",
			Tags:    []string{"dataset"},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "CSV attachment in capture order",
					Content: map[string]*openapi.MediaType{
						"text/csv": {Schema: &openapi.Schema{Type: "string"}},
					},
				},
			},
		},
	}

	spec.Paths["/dataset/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a dataset entry",
			Tags:       []string{"dataset"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Entry identifier")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Dataset entry", "DatasetEntry"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:   openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a dataset entry",
			Tags:       []string{"dataset"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Entry identifier")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent: {Description: "Entry deleted"},
				http.StatusNotFound:  openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/dataset/{id}/validate"] = &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Validate a dataset entry",
			Tags:        []string{"dataset"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Entry identifier")},
			RequestBody: openapi.RequestBodyJSON("ValidateCommand", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Validated entry", "DatasetEntry"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:   openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addSnapshotPaths(spec *openapi.Spec) {
	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Snapshot": {
			Type:        "object",
			Description: "Metadata for one stored dataset export",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string", Example: "dataset-20260115-020000.csv"},
				"storage_key": {Type: "string"},
				"size_bytes":  {Type: "integer"},
				"entry_count": {Type: "integer"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
	})

	spec.Paths["/snapshots"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List snapshots",
			Tags:    []string{"snapshots"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("name", "string", "Filter by name", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK: openapi.ResponseJSON("Paginated snapshots", "Snapshot"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Take an on-demand snapshot",
			Tags:    []string{"snapshots"},
			Responses: map[int]*openapi.Response{
				http.StatusCreated: openapi.ResponseJSON("Created snapshot", "Snapshot"),
			},
		},
	}

	spec.Paths["/snapshots/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a snapshot",
			Tags:       []string{"snapshots"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Snapshot identifier")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Snapshot", "Snapshot"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a snapshot and its blob",
			Tags:       []string{"snapshots"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Snapshot identifier")},
			Responses: map[int]*openapi.Response{
				http.StatusNoContent: {Description: "Snapshot deleted"},
				http.StatusNotFound:  openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/snapshots/{id}/download"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download a snapshot CSV",
			Tags:       []string{"snapshots"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Snapshot identifier")},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "CSV attachment",
					Content: map[string]*openapi.MediaType{
						"text/csv": {Schema: &openapi.Schema{Type: "string"}},
					},
				},
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

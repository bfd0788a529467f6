package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/verdict-ml/verdict/internal/api"
	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/internal/infrastructure"
	"github.com/verdict-ml/verdict/pkg/database"
	"github.com/verdict-ml/verdict/pkg/middleware"
	"github.com/verdict-ml/verdict/pkg/pagination"
)

const nbArtifact = `{
  "format": "verdict/v1",
  "algorithm": "multinomial_nb",
  "vectorizer": {
    "vocabulary": {"hoax": 0, "economy": 1},
    "idf": [1.0, 1.0],
    "lowercase": true
  },
  "naive_bayes": {
    "class_log_prior": [0.0, 0.0],
    "feature_log_prob": [[-0.2231435513, -1.6094379124], [-1.6094379124, -0.2231435513]]
  }
}`

// validConfig enables the dataset feature but leaves artifacts and
// snapshots off, so the module builds without a storage backend.
func validConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "verdict",
			User:            "verdict",
			Password:        "verdict",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		API: config.APIConfig{
			BasePath:    "/api",
			MaxBodySize: "64KB",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
	cfg.Model.Path = filepath.Join(t.TempDir(), "model.json")
	cfg.Sessions.CookieName = "verdict_session"
	cfg.Sessions.TTL = "30m"
	cfg.Sessions.SweepInterval = "5m"
	cfg.Dataset.Enabled = true
	return cfg
}

func setupInfra(t *testing.T, cfg *config.Config) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func writeArtifact(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(nbArtifact), 0644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
}

func TestNewModule(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
	if runtime.Loader == nil {
		t.Error("runtime loader is nil")
	}
	if runtime.Sessions == nil {
		t.Error("runtime sessions is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage != nil {
		t.Error("runtime storage should be nil without artifact or snapshot features")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(runtime, cfg)
	if domain == nil {
		t.Fatal("NewDomain() returned nil")
	}

	if domain.Classify == nil {
		t.Error("Classify system is nil")
	}
	if domain.History == nil {
		t.Error("History system is nil")
	}
	if domain.Feedback == nil {
		t.Error("Feedback system is nil")
	}
	if domain.Dataset == nil {
		t.Error("Dataset system is nil with dataset enabled")
	}
	if domain.Snapshots != nil {
		t.Error("Snapshots system should be nil when disabled")
	}
}

func TestNewDomainClassifierOnly(t *testing.T) {
	cfg := validConfig(t)
	cfg.Dataset.Enabled = false
	infra := setupInfra(t, cfg)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(runtime, cfg)

	if domain.Classify == nil || domain.History == nil || domain.Feedback == nil {
		t.Error("core systems must build without optional features")
	}
	if domain.Dataset != nil {
		t.Error("Dataset system should be nil when disabled")
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("degraded without model", func(t *testing.T) {
		cfg := validConfig(t)
		infra := setupInfra(t, cfg)

		m, err := api.NewModule(cfg, infra)
		if err != nil {
			t.Fatalf("NewModule() error = %v", err)
		}
		infra.Lifecycle.WaitForStartup()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/health", nil)
		m.Serve(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 even when degraded", rec.Code)
		}

		var resp struct {
			Status         string `json:"status"`
			Version        string `json:"version"`
			ModelLoaded    bool   `json:"model_loaded"`
			ModelError     string `json:"model_error"`
			DatasetEnabled bool   `json:"dataset_enabled"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if resp.Status != "degraded" {
			t.Errorf("status = %q, want degraded", resp.Status)
		}
		if resp.ModelLoaded {
			t.Error("model_loaded = true, want false")
		}
		if resp.ModelError == "" {
			t.Error("model_error empty, want load failure detail")
		}
		if resp.Version != "0.1.0" {
			t.Errorf("version = %q, want 0.1.0", resp.Version)
		}
		if !resp.DatasetEnabled {
			t.Error("dataset_enabled = false, want true")
		}
	})

	t.Run("ok with model", func(t *testing.T) {
		cfg := validConfig(t)
		writeArtifact(t, cfg.Model.Path)
		infra := setupInfra(t, cfg)

		m, err := api.NewModule(cfg, infra)
		if err != nil {
			t.Fatalf("NewModule() error = %v", err)
		}
		infra.Lifecycle.WaitForStartup()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/health", nil)
		m.Serve(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp struct {
			Status      string `json:"status"`
			ModelLoaded bool   `json:"model_loaded"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if resp.Status != "ok" {
			t.Errorf("status = %q, want ok", resp.Status)
		}
		if !resp.ModelLoaded {
			t.Error("model_loaded = false, want true")
		}
	})
}

func TestModelEndpoint(t *testing.T) {
	t.Run("unavailable without model", func(t *testing.T) {
		cfg := validConfig(t)
		infra := setupInfra(t, cfg)

		m, err := api.NewModule(cfg, infra)
		if err != nil {
			t.Fatalf("NewModule() error = %v", err)
		}
		infra.Lifecycle.WaitForStartup()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/model", nil)
		m.Serve(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("reports model info", func(t *testing.T) {
		cfg := validConfig(t)
		writeArtifact(t, cfg.Model.Path)
		infra := setupInfra(t, cfg)

		m, err := api.NewModule(cfg, infra)
		if err != nil {
			t.Fatalf("NewModule() error = %v", err)
		}
		infra.Lifecycle.WaitForStartup()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/model", nil)
		m.Serve(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp struct {
			Algorithm         string `json:"algorithm"`
			Classes           int    `json:"classes"`
			VocabularySize    int    `json:"vocabulary_size"`
			ArtifactSizeHuman string `json:"artifact_size_human"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}

		if resp.Algorithm != "multinomial_nb" {
			t.Errorf("algorithm = %q, want multinomial_nb", resp.Algorithm)
		}
		if resp.Classes != 2 {
			t.Errorf("classes = %d, want 2", resp.Classes)
		}
		if resp.VocabularySize != 2 {
			t.Errorf("vocabulary_size = %d, want 2", resp.VocabularySize)
		}
		if resp.ArtifactSizeHuman == "" {
			t.Error("artifact_size_human empty, want formatted size")
		}
	})
}

func TestSessionCookieIssued(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/health", nil)
	m.Serve(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: got %d, want 1", len(cookies))
	}
	if cookies[0].Name != "verdict_session" {
		t.Errorf("cookie name = %q, want verdict_session", cookies[0].Name)
	}
}

func TestOpenAPIEndpoint(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/openapi.json", nil)
	m.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var spec struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi = %q, want 3.1.0", spec.OpenAPI)
	}
	for _, path := range []string{"/classify", "/history", "/feedback", "/dataset"} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("spec missing path %q", path)
		}
	}
}

package classifier

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/verdict-ml/verdict/pkg/lifecycle"
)

// Bundle pairs a ready model with its label mapping.
type Bundle struct {
	Model  Model
	Labels LabelMap
}

// Info describes the most recently loaded artifact.
type Info struct {
	Algorithm      string    `json:"algorithm"`
	Classes        int       `json:"classes"`
	VocabularySize int       `json:"vocabulary_size"`
	ArtifactPath   string    `json:"artifact_path"`
	ArtifactSize   int64     `json:"artifact_size"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// Loader reads the model artifact at most once per process and caches
// the outcome, failures included. A deployment without an artifact
// serves every subsequent request from the cached error rather than
// retrying the filesystem.
type Loader struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	bundle *Bundle
	err    error
	info   Info
}

// NewLoader creates a Loader for the artifact at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger.With("system", "classifier"),
	}
}

// Start registers a startup hook that warms the cache so a missing
// artifact is reported once during boot instead of on first request.
func (l *Loader) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		if _, err := l.Load(); err != nil {
			l.logger.Warn("classification disabled", "error", err)
		}
	})
}

// Load returns the cached bundle and load error. The first call reads
// and validates the artifact; every later call returns the same
// outcome until Reset.
func (l *Loader) Load() (*Bundle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

// Info returns artifact metadata, loading the artifact first if
// needed. It fails with the cached load error when no model is
// available.
func (l *Loader) Info() (Info, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.loadLocked(); err != nil {
		return Info{}, err
	}
	return l.info, nil
}

// Reset clears the cached outcome so the next Load re-reads the
// artifact. Intended for tests that stage different artifacts against
// one loader.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loaded = false
	l.bundle = nil
	l.err = nil
	l.info = Info{}
}

func (l *Loader) loadLocked() (*Bundle, error) {
	if l.loaded {
		return l.bundle, l.err
	}
	l.loaded = true
	l.bundle, l.err = l.read()
	return l.bundle, l.err
}

func (l *Loader) read() (*Bundle, error) {
	artifact, err := ReadArtifact(l.path)
	if err != nil {
		return nil, err
	}

	model, err := BuildModel(artifact)
	if err != nil {
		return nil, err
	}

	var size int64
	if stat, err := os.Stat(l.path); err == nil {
		size = stat.Size()
	}

	l.info = Info{
		Algorithm:      artifact.Algorithm,
		Classes:        artifact.Classes(),
		VocabularySize: len(artifact.Vectorizer.Vocabulary),
		ArtifactPath:   l.path,
		ArtifactSize:   size,
		LoadedAt:       time.Now().UTC(),
	}

	l.logger.Info(
		"model artifact loaded",
		"algorithm", l.info.Algorithm,
		"classes", l.info.Classes,
		"vocabulary_size", l.info.VocabularySize,
		"artifact_size", l.info.ArtifactSize,
	)

	return &Bundle{Model: model, Labels: Labels()}, nil
}

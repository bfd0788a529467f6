package api

import (
	"github.com/verdict-ml/verdict/internal/classify"
	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/internal/dataset"
	"github.com/verdict-ml/verdict/internal/feedback"
	"github.com/verdict-ml/verdict/internal/history"
	"github.com/verdict-ml/verdict/internal/snapshots"
)

// Domain holds all domain systems that comprise the API. Dataset and
// Snapshots are nil when their features are disabled.
type Domain struct {
	Classify  classify.System
	History   history.System
	Feedback  feedback.System
	Dataset   dataset.System
	Snapshots snapshots.System
}

// NewDomain creates all domain systems from the API runtime. The
// dataset system is built whenever a database is present; it backs
// feedback capture and snapshot sources even when its own routes stay
// unregistered.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	var datasetSystem dataset.System
	if runtime.Database != nil {
		datasetSystem = dataset.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		)
	}

	var recorder feedback.Recorder
	if cfg.Dataset.Enabled && datasetSystem != nil {
		recorder = datasetSystem
	}

	d := &Domain{
		Classify: classify.New(runtime.Loader, runtime.Logger),
		History:  history.New(runtime.Loader, runtime.Logger),
		Feedback: feedback.New(runtime.Loader, recorder, runtime.Logger),
	}

	if cfg.Dataset.Enabled {
		d.Dataset = datasetSystem
	}

	if cfg.Snapshots.Enabled && datasetSystem != nil && runtime.Storage != nil {
		d.Snapshots = snapshots.New(
			runtime.Database.Connection(),
			runtime.Storage,
			datasetSystem,
			runtime.Logger,
			runtime.Pagination,
			cfg.Snapshots.Prefix,
		)
	}

	return d
}

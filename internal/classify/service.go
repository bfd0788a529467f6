package classify

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verdict-ml/verdict/internal/classifier"
	"github.com/verdict-ml/verdict/internal/sessions"
)

type service struct {
	loader *classifier.Loader
	logger *slog.Logger
	now    func() time.Time
}

// New creates a classification service implementing the System interface.
func New(loader *classifier.Loader, logger *slog.Logger) System {
	return &service{
		loader: loader,
		logger: logger.With("system", "classify"),
		now:    time.Now,
	}
}

func (s *service) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, maxBodySize)
}

func (s *service) Classify(
	ctx context.Context,
	sess *sessions.Session,
	text string,
) (*sessions.Record, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	bundle, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	label, confidence, err := evaluate(bundle, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	rec := sessions.Record{
		Text:       text,
		Label:      label,
		Confidence: confidence,
		Timestamp:  s.now().Format(sessions.TimestampLayout),
	}
	sess.Append(rec)

	s.logger.Info(
		"text classified",
		"session", sess.ID(),
		"label", label,
		"confidence", confidence,
	)

	return &rec, nil
}

func (s *service) ClassifyBatch(
	ctx context.Context,
	sess *sessions.Session,
	texts []string,
) ([]BatchItem, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	bundle, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(texts))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, raw := range texts {
		g.Go(func() error {
			text := strings.TrimSpace(raw)
			if text == "" {
				items[i] = BatchItem{Error: ErrEmptyInput.Error()}
				return nil
			}

			label, confidence, err := evaluate(bundle, text)
			if err != nil {
				items[i] = BatchItem{Error: fmt.Sprintf("%s: %v", ErrClassification, err)}
				return nil
			}

			items[i] = BatchItem{Record: &sessions.Record{
				Text:       text,
				Label:      label,
				Confidence: confidence,
				Timestamp:  s.now().Format(sessions.TimestampLayout),
			}}
			return nil
		})
	}
	g.Wait()

	// Successful results land in the session in submission order, not
	// completion order.
	appended := 0
	for _, item := range items {
		if item.Record != nil {
			sess.Append(*item.Record)
			appended++
		}
	}

	s.logger.Info(
		"batch classified",
		"session", sess.ID(),
		"submitted", len(texts),
		"appended", appended,
	)

	return items, nil
}

// evaluate runs a single text through the model and resolves its
// label. A model without probability support, or one whose probe
// fails, yields zero confidence rather than an error.
func evaluate(bundle *classifier.Bundle, text string) (string, float64, error) {
	indexes, err := bundle.Model.Predict([]string{text})
	if err != nil {
		return "", 0, err
	}
	if len(indexes) != 1 {
		return "", 0, fmt.Errorf("predict returned %d results for 1 text", len(indexes))
	}

	label, err := bundle.Labels.Label(indexes[0])
	if err != nil {
		return "", 0, err
	}

	confidence := 0.0
	if estimator, ok := bundle.Model.(classifier.ProbabilityEstimator); ok {
		if probs, err := estimator.PredictProba([]string{text}); err == nil && len(probs) == 1 {
			confidence = maxProbability(probs[0])
		}
	}

	return label, confidence, nil
}

func maxProbability(probs []float64) float64 {
	var max float64
	for _, p := range probs {
		if p > max {
			max = p
		}
	}
	return max
}

package feedback

import (
	"context"
	"errors"
	"log/slog"

	"github.com/verdict-ml/verdict/internal/classifier"
	"github.com/verdict-ml/verdict/internal/sessions"
)

const thanksMessage = "thank you for your feedback"

type service struct {
	loader   *classifier.Loader
	recorder Recorder
	logger   *slog.Logger
}

// New creates a feedback service implementing the System interface.
// recorder may be nil when the retraining dataset is disabled.
func New(loader *classifier.Loader, recorder Recorder, logger *slog.Logger) System {
	return &service{
		loader:   loader,
		recorder: recorder,
		logger:   logger.With("system", "feedback"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Submit(
	ctx context.Context,
	sess *sessions.Session,
	correct bool,
) (*Receipt, error) {
	if _, err := s.loader.Load(); err != nil {
		return nil, err
	}

	// Confirmations are acknowledged but never stored; only disputes
	// feed the retraining loop.
	if correct {
		if sess.Len() == 0 {
			return nil, ErrNoHistory
		}
		return &Receipt{Recorded: false, Message: thanksMessage}, nil
	}

	rec, err := sess.MarkLastIncorrect()
	if err != nil {
		if errors.Is(err, sessions.ErrEmptyHistory) {
			return nil, ErrNoHistory
		}
		return nil, err
	}

	s.logger.Info("classification disputed", "session", sess.ID(), "label", rec.Label)

	if s.recorder != nil {
		if err := s.recorder.RecordIncorrect(
			ctx, sess.ID(), rec.Text, rec.Label, rec.Confidence,
		); err != nil {
			// Capture is supplementary; the session annotation already
			// happened and must stand.
			s.logger.Error("dataset capture failed", "session", sess.ID(), "error", err)
		}
	}

	return &Receipt{Recorded: true, Message: thanksMessage}, nil
}

package history

import (
	"log/slog"

	"github.com/verdict-ml/verdict/internal/classifier"
	"github.com/verdict-ml/verdict/internal/sessions"
)

type service struct {
	loader *classifier.Loader
	logger *slog.Logger
}

// New creates a history service implementing the System interface.
func New(loader *classifier.Loader, logger *slog.Logger) System {
	return &service{
		loader: loader,
		logger: logger.With("system", "history"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) View(sess *sessions.Session) (*View, error) {
	if err := s.gate(); err != nil {
		return nil, err
	}

	records := sess.Visible(VisibleLimit)
	entries := make([]Entry, len(records))
	for i, rec := range records {
		entries[i] = NewEntry(rec)
	}

	return &View{
		ShowHistory: sess.ShowHistory(),
		Count:       sess.Len(),
		Entries:     entries,
	}, nil
}

func (s *service) Toggle(sess *sessions.Session) (bool, error) {
	if err := s.gate(); err != nil {
		return false, err
	}
	return sess.Toggle(), nil
}

func (s *service) Clear(sess *sessions.Session) (int, error) {
	if err := s.gate(); err != nil {
		return 0, err
	}

	cleared := sess.Clear()
	s.logger.Info("history cleared", "session", sess.ID(), "records", cleared)
	return cleared, nil
}

// Export returns the full history, not just the visible window.
func (s *service) Export(sess *sessions.Session) ([]sessions.Record, error) {
	if err := s.gate(); err != nil {
		return nil, err
	}
	return sess.Records(), nil
}

func (s *service) gate() error {
	_, err := s.loader.Load()
	return err
}

// Package journal keeps a sqlite record of translated system errors.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/mutker/oserr/internal/errors"
	"codeberg.org/mutker/oserr/internal/logger"
	"codeberg.org/mutker/oserr/internal/syserr"
)

type service struct {
	repo Repository
	cfg  Config
	now  func() time.Time
}

// No-op implementation
type noopRecorder struct{}

func NewService(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If the journal is disabled, return a no-op recorder
	if !cfg.Enabled {
		log.Debug().Msg("Journal disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to create journal repository")
		return nil, err
	}

	log.Debug().
		Str("db_path", cfg.DBPath).
		Bool("enabled", cfg.Enabled).
		Msg("Journal service initialized successfully")

	return &service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}, nil
}

// NewEntry builds the journal entry for a translated error.
func NewEntry(e *syserr.Error, at time.Time) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Timestamp: at.UTC(),
		Op:        e.Name(),
		Domain:    e.Domain().String(),
		Code:      e.Code(),
		Literal:   e.Literal(),
		Message:   e.Error(),
	}
}

func (s *service) Record(ctx context.Context, err error) error {
	errFactory := errors.New()

	if err == nil {
		return nil
	}

	e, ok := syserr.As(err)
	if !ok {
		return errFactory.Wrap(ErrInvalidEntry, err)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Record(NewEntry(e, s.now())); err != nil {
			return errFactory.Wrap(ErrRecord, err)
		}
	}

	return nil
}

func (s *service) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.repo.List(ctx, limit)
}

func (s *service) Prune(ctx context.Context, before time.Time) (int64, error) {
	return s.repo.Prune(ctx, before)
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}
	return nil
}

// No-op implementation
func (*noopRecorder) Record(_ context.Context, _ error) error {
	return nil
}

func (*noopRecorder) List(_ context.Context, _ int) ([]Entry, error) {
	return nil, nil
}

func (*noopRecorder) Prune(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (*noopRecorder) Close() error {
	return nil
}

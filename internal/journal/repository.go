package journal

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/multierr"

	"codeberg.org/mutker/oserr/internal/errors"
	"codeberg.org/mutker/oserr/internal/logger"
)

type repository struct {
	db            *sql.DB
	logger        logger.Logger
	cfg           Config
	mu            sync.Mutex
	buffer        []*Entry
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
	closeOnce     sync.Once
	closeErr      error
}

func NewRepository(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(db, cfg.backupDir(), log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Int("batch_size", cfg.BatchSize).
		Dur("batch_timeout", cfg.BatchTimeout).
		Msg("Journal repository initialized")

	repo := &repository{
		db:            db,
		logger:        log,
		cfg:           cfg,
		buffer:        make([]*Entry, 0, cfg.BatchSize),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}

	if cfg.BatchTimeout > 0 {
		repo.flushTicker = time.NewTicker(cfg.BatchTimeout)
		go repo.flusher()
	} else {
		close(repo.flushDoneChan)
	}

	return repo, nil
}

func (r *repository) Record(entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, entry)

	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}

	return nil
}

func (r *repository) List(ctx context.Context, limit int) ([]Entry, error) {
	errFactory := errors.New()

	if err := r.Flush(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = math.MaxInt32
	}

	rows, err := r.db.QueryContext(ctx, listFailuresSQL, limit)
	if err != nil {
		return nil, errFactory.Wrap(ErrQuery, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts int64
		)
		if err := rows.Scan(&e.ID, &ts, &e.Op, &e.Domain, &e.Code, &e.Literal, &e.Message); err != nil {
			return nil, errFactory.Wrap(ErrQuery, err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrQuery, err)
	}

	return entries, nil
}

func (r *repository) Prune(ctx context.Context, before time.Time) (int64, error) {
	errFactory := errors.New()

	if err := r.Flush(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, pruneFailuresSQL, before.UnixNano())
	if err != nil {
		return 0, errFactory.Wrap(ErrPrune, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errFactory.Wrap(ErrPrune, err)
	}

	r.logger.Debug().Int64("removed", n).Time("before", before).Msg("Pruned journal")

	return n, nil
}

// Flush writes buffered entries now.
func (r *repository) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.flush()
}

// Close flushes what is buffered, checkpoints the WAL and closes the
// database. Every failing step is reported.
func (r *repository) Close() error {
	r.closeOnce.Do(func() {
		close(r.shutdownChan)
		if r.flushTicker != nil {
			r.flushTicker.Stop()
		}
		<-r.flushDoneChan

		errFactory := errors.New()
		var err error

		if ferr := r.Flush(); ferr != nil {
			err = multierr.Append(err, ferr)
		}

		if _, cerr := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); cerr != nil {
			err = multierr.Append(err, errFactory.WithData(ErrStorageClose, struct {
				Phase string
				Error string
			}{
				Phase: "checkpoint_wal",
				Error: cerr.Error(),
			}))
		}

		if cerr := r.db.Close(); cerr != nil {
			err = multierr.Append(err, errFactory.WithData(ErrStorageClose, struct {
				Phase string
				Error string
			}{
				Phase: "close_database",
				Error: cerr.Error(),
			}))
		}

		if err == nil {
			r.logger.Info().Msg("Journal repository closed gracefully")
		}
		r.closeErr = err
	})

	return r.closeErr
}

func (r *repository) flusher() {
	defer close(r.flushDoneChan)

	for {
		select {
		case <-r.flushTicker.C:
			if err := r.Flush(); err != nil {
				r.logger.Error().Err(err).Msg("Periodic journal flush failed")
			}
		case <-r.shutdownChan:
			return
		}
	}
}

func (r *repository) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	errFactory := errors.New()

	tx, err := r.db.Begin()
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to begin transaction")
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.Prepare(insertFailureSQL)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to prepare statement")
		if err := tx.Rollback(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to roll back transaction")
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, e := range r.buffer {
		_, err := stmt.Exec(e.ID, e.Timestamp.UnixNano(), e.Op, e.Domain, int64(e.Code), e.Literal, e.Message)
		if err != nil {
			r.logger.Error().Err(err).Msg("Failed to execute insert")
			if err := tx.Rollback(); err != nil {
				r.logger.Error().Err(err).Msg("Failed to roll back transaction")
			}
			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to commit transaction")
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	r.logger.Debug().Int("records", len(r.buffer)).Msg("Flushed journal to database")
	r.buffer = r.buffer[:0]

	return nil
}

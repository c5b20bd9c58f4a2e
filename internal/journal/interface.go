package journal

import (
	"context"
	"time"
)

// Recorder is the journal as seen by callers.
type Recorder interface {
	// Record journals err if it is a translated system error.
	Record(ctx context.Context, err error) error
	// List returns up to limit entries, newest first. A limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Prune deletes entries older than before and reports how many went.
	Prune(ctx context.Context, before time.Time) (int64, error)
	Close() error
}

// Repository defines the interface for journal storage
type Repository interface {
	Record(entry *Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
	Close() error
}

// Entry is one journaled failure.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Op        string    `json:"op"`
	Domain    string    `json:"domain"`
	Code      int       `json:"code"`
	Literal   string    `json:"literal,omitempty"`
	Message   string    `json:"message"`
}

// Package history provides optional persistence of evaluation records
// for debugging authored flows.
package history

import (
	"encoding/json"
	"errors"
	"time"
)

// Record is one completed evaluation: the expression text, its outcome,
// and timing. Exactly one of Result and Error is set.
type Record struct {
	ID         string          `json:"id"`
	Expression string          `json:"expression"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	DurationMS float64         `json:"duration_ms"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Failed reports whether the evaluation ended in an error.
func (r Record) Failed() bool {
	return r.Error != ""
}

// Store persists evaluation records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores a record.
	Append(rec Record) error

	// List returns the most recent records, newest first.
	// limit <= 0 returns everything. An empty store returns an empty
	// slice, not an error.
	List(limit int) ([]Record, error)

	// Purge removes records with a timestamp before cutoff.
	// Returns the number of records removed.
	Purge(cutoff time.Time) (int, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")
)

// Package store persists the append-only interaction log.
package store

import (
	"context"
	"time"
)

// Interaction is one completed turn of the loop. Records are immutable after
// creation; id and timestamp are assigned by the store.
type Interaction struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Language   string    `json:"detected_language"`
	Transcript string    `json:"user_transcript"`
	Intent     string    `json:"detected_intent"`
	Response   string    `json:"agent_response"`
	Summary    string    `json:"summary"`
}

// Stats is the aggregate view, recomputed from the full table on demand.
type Stats struct {
	Total      int            `json:"total_interactions"`
	ByIntent   map[string]int `json:"by_intent"`
	ByLanguage map[string]int `json:"by_language"`
}

// Store is append-only: there is no update or delete in the contract.
type Store interface {
	// Log appends one interaction and returns its monotonic id.
	Log(ctx context.Context, rec *Interaction) (int64, error)

	// Recent returns up to limit interactions, newest first.
	Recent(ctx context.Context, limit int) ([]Interaction, error)

	// Stats recomputes the aggregate over all stored records.
	Stats(ctx context.Context) (*Stats, error)

	Close() error
}

// Package storage persists transformation results so transformed recipes
// can be fetched again by ID. An in-memory store backs single-process runs
// and tests; a NATS KV store backs the service.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/platechange/platechange/recipe"
)

// Record is one stored transformation result: the transformed recipe
// document, what was done to it, and the diff against the original.
type Record struct {
	ID             string          `json:"id"`
	Transformation string          `json:"transformation"`
	Style          string          `json:"style,omitempty"`
	Method         string          `json:"method,omitempty"`
	SourceURL      string          `json:"source_url,omitempty"`
	Recipe         recipe.Document `json:"recipe"`
	Changes        []recipe.Change `json:"changes"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewID generates a record identifier.
func NewID() string {
	return uuid.New().String()
}

// Store is the persistence contract for transformation records.
type Store interface {
	// Create stores the record, assigning ID and CreatedAt.
	Create(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID, ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)
}

// Package registry persists serialized data-source definitions so they can
// be shared between the CLI and the feature-store framework.
package registry

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no definition exists under the given name.
var ErrNotFound = errors.New("data source definition not found")

// Record is one persisted data-source definition. Spec holds the marshaled
// envelope bytes exactly as the framework would store them.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClassType string    `json:"class_type"`
	Spec      []byte    `json:"spec"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines the persistence interface for definitions.
type Store interface {
	// PutDefinition inserts or updates a definition by name. On return the
	// record carries the stored ID and timestamps.
	PutDefinition(ctx context.Context, rec *Record) error
	GetDefinition(ctx context.Context, name string) (*Record, error)
	ListDefinitions(ctx context.Context) ([]*Record, error)
	DeleteDefinition(ctx context.Context, name string) error

	// Lifecycle
	Close() error
}

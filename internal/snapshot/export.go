// Package snapshot exports the definition registry as JSONL so it can be
// backed up or mirrored outside the database.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/quarryml/db2source/internal/registry"
)

// Destination is the interface for a snapshot target.
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version         string    `json:"version"`
	Type            string    `json:"type"`
	Timestamp       time.Time `json:"timestamp"`
	DefinitionCount int       `json:"definition_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all definitions from the registry as JSONL to w,
// sorted by name.
func ExportJSONL(ctx context.Context, s registry.Store, w io.Writer) error {
	defs, err := s.ListDefinitions(ctx)
	if err != nil {
		return fmt.Errorf("list definitions: %w", err)
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:         "1",
		Type:            "header",
		Timestamp:       time.Now().UTC(),
		DefinitionCount: len(defs),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, d := range defs {
		if err := enc.Encode(record{Type: "definition", Data: d}); err != nil {
			return fmt.Errorf("encode definition %s: %w", d.Name, err)
		}
	}

	return nil
}

package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quarryml/db2source/internal/registry"
)

// fakeStore is an in-memory registry.Store for export tests.
type fakeStore struct {
	defs    []*registry.Record
	listErr error
}

func (f *fakeStore) PutDefinition(ctx context.Context, rec *registry.Record) error { return nil }
func (f *fakeStore) GetDefinition(ctx context.Context, name string) (*registry.Record, error) {
	return nil, registry.ErrNotFound
}
func (f *fakeStore) ListDefinitions(ctx context.Context) ([]*registry.Record, error) {
	return f.defs, f.listErr
}
func (f *fakeStore) DeleteDefinition(ctx context.Context, name string) error { return nil }
func (f *fakeStore) Close() error                                            { return nil }

func TestExportJSONL(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{defs: []*registry.Record{
		{ID: "src-b", Name: "driver_stats", ClassType: "github.com/quarryml/db2source.Source", Spec: []byte{0x02}, CreatedAt: now, UpdatedAt: now},
		{ID: "src-a", Name: "customer_profile", ClassType: "github.com/quarryml/db2source.Source", Spec: []byte{0x01}, CreatedAt: now, UpdatedAt: now},
	}}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), store, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 definitions, got %d lines", len(lines))
	}

	var hdr struct {
		Version         string `json:"version"`
		Type            string `json:"type"`
		DefinitionCount int    `json:"definition_count"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &hdr); err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if hdr.Type != "header" || hdr.Version != "1" || hdr.DefinitionCount != 2 {
		t.Fatalf("got header %+v", hdr)
	}

	// Definitions are sorted by name.
	var first struct {
		Type string          `json:"type"`
		Data registry.Record `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &first); err != nil {
		t.Fatalf("decode first definition: %v", err)
	}
	if first.Type != "definition" || first.Data.Name != "customer_profile" {
		t.Fatalf("got first record %+v", first)
	}
	if !bytes.Equal(first.Data.Spec, []byte{0x01}) {
		t.Fatalf("spec bytes did not survive the round trip: %v", first.Data.Spec)
	}
}

func TestExportJSONL_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), &fakeStore{}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only a header, got %d lines", len(lines))
	}
}

func TestExportJSONL_ListError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("boom")}
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), store, &buf); err == nil {
		t.Fatal("expected error when the registry listing fails")
	}
}

package db2source

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewSavedDatasetStorage(t *testing.T) {
	st, err := NewSavedDatasetStorage("SDS.DRIVER_STATS_2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Table != "SDS.DRIVER_STATS_2026" {
		t.Fatalf("got table %q", st.Table)
	}

	if _, err := NewSavedDatasetStorage(""); !errors.Is(err, ErrNoTableRef) {
		t.Fatalf("expected ErrNoTableRef, got %v", err)
	}
}

func TestSavedDatasetStorageProtoRoundTrip(t *testing.T) {
	in, err := NewSavedDatasetStorage("SDS.DRIVER_STATS_2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := in.ToProto()
	if err != nil {
		t.Fatalf("to proto: %v", err)
	}
	if p.CustomStorage == nil {
		t.Fatal("expected custom storage to be set")
	}

	// Only the table reference travels; name and query stay empty.
	var cfg map[string]string
	if err := json.Unmarshal(p.CustomStorage.Configuration, &cfg); err != nil {
		t.Fatalf("decode configuration: %v", err)
	}
	if cfg["table"] != in.Table || cfg["name"] != "" || cfg["query"] != "" {
		t.Fatalf("got configuration %v", cfg)
	}

	out, err := SavedDatasetStorageFromProto(p)
	if err != nil {
		t.Fatalf("from proto: %v", err)
	}
	if out.Table != in.Table {
		t.Fatalf("got table %q, want %q", out.Table, in.Table)
	}
}

func TestSavedDatasetStorageToDataSource(t *testing.T) {
	st, err := NewSavedDatasetStorage("SDS.DRIVER_STATS_2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src, err := st.ToDataSource()
	if err != nil {
		t.Fatalf("to data source: %v", err)
	}
	if src.Name != st.Table || src.Table != st.Table {
		t.Fatalf("got name=%q table=%q", src.Name, src.Table)
	}
	if src.TableQueryString() != st.Table {
		t.Fatalf("got table query string %q", src.TableQueryString())
	}
}

func TestSavedDatasetStorageFromProto_MissingStorage(t *testing.T) {
	st, err := NewSavedDatasetStorage("SDS.X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := st.ToProto()
	if err != nil {
		t.Fatalf("to proto: %v", err)
	}
	p.CustomStorage = nil

	if _, err := SavedDatasetStorageFromProto(p); !errors.Is(err, ErrMissingOptions) {
		t.Fatalf("expected ErrMissingOptions, got %v", err)
	}
}

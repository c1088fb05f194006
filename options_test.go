package db2source

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/quarryml/db2source/envelope"
)

func TestOptionsToProto_ExactKeys(t *testing.T) {
	opts := Options{Name: "driver_stats", Table: "DRIVERS.STATS"}

	p, err := opts.ToProto()
	if err != nil {
		t.Fatalf("to proto: %v", err)
	}

	var cfg map[string]string
	if err := json.Unmarshal(p.Configuration, &cfg); err != nil {
		t.Fatalf("configuration is not a JSON object of strings: %v", err)
	}
	if len(cfg) != 3 {
		t.Fatalf("expected exactly 3 keys, got %v", cfg)
	}
	if cfg["name"] != "driver_stats" || cfg["table"] != "DRIVERS.STATS" || cfg["query"] != "" {
		t.Fatalf("got %v", cfg)
	}
}

func TestOptionsFromProto(t *testing.T) {
	for _, tc := range []struct {
		name          string
		configuration string
		want          Options
		wantErr       bool
	}{
		{
			name:          "Valid",
			configuration: `{"name":"n","query":"SELECT 1","table":""}`,
			want:          Options{Name: "n", Query: "SELECT 1"},
		},
		{
			name:          "MissingKey",
			configuration: `{"name":"n","table":"t"}`,
			wantErr:       true,
		},
		{
			name:          "ExtraKey",
			configuration: `{"name":"n","query":"","table":"t","schema":"s"}`,
			wantErr:       true,
		},
		{
			name:          "NonStringValue",
			configuration: `{"name":"n","query":null,"table":42}`,
			wantErr:       true,
		},
		{
			name:          "MalformedJSON",
			configuration: `{"name":`,
			wantErr:       true,
		},
		{
			name:          "NotAnObject",
			configuration: `["name","query","table"]`,
			wantErr:       true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := &envelope.CustomSourceOptions{Configuration: []byte(tc.configuration)}
			got, err := OptionsFromProto(p)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestOptionsFromProto_Nil(t *testing.T) {
	if _, err := OptionsFromProto(nil); !errors.Is(err, ErrMissingOptions) {
		t.Fatalf("expected ErrMissingOptions, got %v", err)
	}
	empty := &envelope.CustomSourceOptions{}
	if _, err := OptionsFromProto(empty); !errors.Is(err, ErrMissingOptions) {
		t.Fatalf("expected ErrMissingOptions for empty configuration, got %v", err)
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	in := Options{Name: "active_drivers", Query: "SELECT * FROM DRIVERS.STATS WHERE active = 1"}

	p, err := in.ToProto()
	if err != nil {
		t.Fatalf("to proto: %v", err)
	}
	out, err := OptionsFromProto(p)
	if err != nil {
		t.Fatalf("from proto: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

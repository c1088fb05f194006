package db2source

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quarryml/db2source/envelope"
)

// Keys of the serialized options blob. The serialized form is an opaque
// JSON object with exactly these three string keys.
const (
	optionKeyName  = "name"
	optionKeyQuery = "query"
	optionKeyTable = "table"
)

// ErrMissingOptions is returned when an envelope carries no custom options
// blob for this connector.
var ErrMissingOptions = errors.New("envelope carries no custom options configuration")

// Options groups the three optional strings that locate data: an
// identifying name, a literal table reference, and an alternative free-form
// query. A table reference and a query are mutually substitutable as the
// source of rows.
type Options struct {
	Name  string
	Query string
	Table string
}

// ToProto serializes the options as the connector's opaque JSON blob inside
// the framework's custom-options envelope.
func (o Options) ToProto() (*envelope.CustomSourceOptions, error) {
	cfg, err := json.Marshal(map[string]string{
		optionKeyName:  o.Name,
		optionKeyQuery: o.Query,
		optionKeyTable: o.Table,
	})
	if err != nil {
		return nil, fmt.Errorf("encode options configuration: %w", err)
	}
	return &envelope.CustomSourceOptions{Configuration: cfg}, nil
}

// OptionsFromProto reconstructs options from the custom-options envelope.
// The configuration must be a JSON object with exactly the keys "name",
// "query" and "table", all strings; anything else fails.
func OptionsFromProto(p *envelope.CustomSourceOptions) (Options, error) {
	if p == nil || len(p.Configuration) == 0 {
		return Options{}, ErrMissingOptions
	}

	var cfg map[string]string
	if err := json.Unmarshal(p.Configuration, &cfg); err != nil {
		return Options{}, fmt.Errorf("decode options configuration: %w", err)
	}

	for _, key := range []string{optionKeyName, optionKeyQuery, optionKeyTable} {
		if _, ok := cfg[key]; !ok {
			return Options{}, fmt.Errorf("options configuration is missing key %q", key)
		}
	}
	if len(cfg) != 3 {
		return Options{}, fmt.Errorf("options configuration has %d keys, want exactly name, query and table", len(cfg))
	}

	return Options{
		Name:  cfg[optionKeyName],
		Query: cfg[optionKeyQuery],
		Table: cfg[optionKeyTable],
	}, nil
}

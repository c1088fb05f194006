// Package db2source is a feature-store connector for reading tabular
// feature data from a DB2-compatible relational database.
//
// A Source describes where feature values can be read from: either a
// literal table reference or a free-form query, the two being mutually
// substitutable as the source of rows. Sources round-trip through the
// framework's generic persistence envelope (see the envelope package) so
// the framework can store definitions it does not natively understand.
package db2source

import (
	"errors"
	"fmt"
	"maps"

	"github.com/quarryml/db2source/envelope"
)

// ClassType is the registry key under which the framework resolves this
// connector when it re-hydrates a persisted definition.
const ClassType = "github.com/quarryml/db2source.Source"

// ErrNoName is returned when a source is constructed without an explicit
// name and without a table reference to derive one from.
var ErrNoName = errors.New("data source requires a name or a table reference")

// SourceConfig carries the inputs for constructing a Source.
type SourceConfig struct {
	// Name identifies the source. When empty, the table reference is used.
	Name string
	// Table is a literal table reference, schema-qualified if needed.
	Table string
	// Query is a free-form query used instead of a table reference.
	Query string

	TimestampField         string
	CreatedTimestampColumn string

	// FieldMapping renames columns of the underlying relation to feature
	// names the framework expects.
	FieldMapping map[string]string

	Description string
	Tags        map[string]string
	Owner       string
}

// Source is a data-source descriptor for a DB2-compatible database.
// Construct values with New so the naming invariant holds.
type Source struct {
	Name                   string
	Table                  string
	Query                  string
	TimestampField         string
	CreatedTimestampColumn string
	FieldMapping           map[string]string
	Description            string
	Tags                   map[string]string
	Owner                  string
}

// New builds a Source. A name is required from either an explicit value or
// the table reference; absence of both is a configuration error.
func New(cfg SourceConfig) (*Source, error) {
	name := cfg.Name
	if name == "" {
		if cfg.Table == "" {
			return nil, ErrNoName
		}
		name = cfg.Table
	}

	return &Source{
		Name:                   name,
		Table:                  cfg.Table,
		Query:                  cfg.Query,
		TimestampField:         cfg.TimestampField,
		CreatedTimestampColumn: cfg.CreatedTimestampColumn,
		FieldMapping:           cfg.FieldMapping,
		Description:            cfg.Description,
		Tags:                   cfg.Tags,
		Owner:                  cfg.Owner,
	}, nil
}

// Options returns the three-string options holder for this source.
func (s *Source) Options() Options {
	return Options{Name: s.Name, Query: s.Query, Table: s.Table}
}

// TableQueryString returns the fragment the runtime substitutes as the
// source of rows: the bare table reference when one is set, otherwise the
// query wrapped in parentheses so it reads as a sub-query.
func (s *Source) TableQueryString() string {
	if s.Table != "" {
		return s.Table
	}
	return "(" + s.Query + ")"
}

// Equal reports whether two sources resolve to the same rows. Equality is
// defined over the name, the resolved query text, the timestamp field
// identifiers and the field mapping, not over object identity.
func (s *Source) Equal(other *Source) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Name == other.Name &&
		s.TableQueryString() == other.TableQueryString() &&
		s.TimestampField == other.TimestampField &&
		s.CreatedTimestampColumn == other.CreatedTimestampColumn &&
		maps.Equal(s.FieldMapping, other.FieldMapping)
}

// ToProto serializes the source into the framework's persistence envelope.
func (s *Source) ToProto() (*envelope.DataSource, error) {
	opts, err := s.Options().ToProto()
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", s.Name, err)
	}

	return &envelope.DataSource{
		Name:                   s.Name,
		Type:                   envelope.SourceTypeCustom,
		DataSourceClassType:    ClassType,
		FieldMapping:           s.FieldMapping,
		TimestampField:         s.TimestampField,
		CreatedTimestampColumn: s.CreatedTimestampColumn,
		Description:            s.Description,
		Tags:                   s.Tags,
		Owner:                  s.Owner,
		CustomOptions:          opts,
	}, nil
}

// SourceFromProto reconstructs a source from the framework's persistence
// envelope. The envelope must carry this connector's custom options blob.
func SourceFromProto(p *envelope.DataSource) (*Source, error) {
	opts, err := OptionsFromProto(p.CustomOptions)
	if err != nil {
		return nil, fmt.Errorf("data source %s: %w", p.Name, err)
	}

	return New(SourceConfig{
		Name:                   opts.Name,
		Table:                  opts.Table,
		Query:                  opts.Query,
		TimestampField:         p.TimestampField,
		CreatedTimestampColumn: p.CreatedTimestampColumn,
		FieldMapping:           p.FieldMapping,
		Description:            p.Description,
		Tags:                   p.Tags,
		Owner:                  p.Owner,
	})
}

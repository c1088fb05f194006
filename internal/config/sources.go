package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/quarryml/db2source"
)

// SourcesFile is the on-disk declaration of data sources, one
// [[source]] block per source.
type SourcesFile struct {
	Sources []SourceDef `toml:"source"`
}

type SourceDef struct {
	Name                   string            `toml:"name"`
	Table                  string            `toml:"table"`
	Query                  string            `toml:"query"`
	TimestampField         string            `toml:"timestamp_field"`
	CreatedTimestampColumn string            `toml:"created_timestamp_column"`
	FieldMapping           map[string]string `toml:"field_mapping"`
	Description            string            `toml:"description"`
	Tags                   map[string]string `toml:"tags"`
	Owner                  string            `toml:"owner"`
}

// ToSource builds the runtime source from the declaration, applying
// the usual name/table validation.
func (d SourceDef) ToSource() (*db2source.Source, error) {
	return db2source.New(db2source.SourceConfig{
		Name:                   d.Name,
		Table:                  d.Table,
		Query:                  d.Query,
		TimestampField:         d.TimestampField,
		CreatedTimestampColumn: d.CreatedTimestampColumn,
		FieldMapping:           d.FieldMapping,
		Description:            d.Description,
		Tags:                   d.Tags,
		Owner:                  d.Owner,
	})
}

// LoadSources parses a TOML sources file and validates every entry.
func LoadSources(path string) ([]*db2source.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var file SourcesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	sources := make([]*db2source.Source, 0, len(file.Sources))
	seen := make(map[string]bool, len(file.Sources))
	for i, def := range file.Sources {
		src, err := def.ToSource()
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		if seen[src.Name] {
			return nil, fmt.Errorf("source %d: duplicate name %q", i, src.Name)
		}
		seen[src.Name] = true
		sources = append(sources, src)
	}
	return sources, nil
}

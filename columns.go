package db2source

import (
	"context"
	"database/sql"
	"fmt"
)

// Column describes one column of the relation a source reads from.
type Column struct {
	Name   string
	DBType string
}

// ValueType maps the column's database type to the framework value type.
func (c Column) ValueType() ValueType {
	return ValueTypeFor(c.DBType)
}

// ColumnNamesAndTypes reports the column names and database type names of
// the source's relation. It issues a zero-row query against the table query
// string and reads the driver's column metadata; no data is moved.
func (s *Source) ColumnNamesAndTypes(ctx context.Context, db *sql.DB) ([]Column, error) {
	query := fmt.Sprintf("SELECT * FROM (%s) AS sub LIMIT 0", s.TableQueryString())

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("describe source %s: %w", s.Name, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column metadata for %s: %w", s.Name, err)
	}

	cols := make([]Column, 0, len(types))
	for _, ct := range types {
		cols = append(cols, Column{Name: ct.Name(), DBType: ct.DatabaseTypeName()})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe source %s: %w", s.Name, err)
	}
	return cols, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quarryml/db2source/internal/registry"
)

// definitionColumns is the column list used for SELECT statements on the
// data_source_definitions table.
const definitionColumns = `id, name, class_type, spec, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func queryPutDefinition(ctx context.Context, db executor, rec *registry.Record) error {
	// Upserts keep the original ID and created_at of an existing name.
	row := db.QueryRowContext(ctx, `
		INSERT INTO data_source_definitions (id, name, class_type, spec)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			class_type = EXCLUDED.class_type,
			spec = EXCLUDED.spec,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		rec.ID,
		rec.Name,
		rec.ClassType,
		rec.Spec,
	)
	return row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func queryGetDefinition(ctx context.Context, db executor, name string) (*registry.Record, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+definitionColumns+` FROM data_source_definitions WHERE name = $1`, name)
	rec, err := scanDefinition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, registry.ErrNotFound
	}
	return rec, err
}

func queryListDefinitions(ctx context.Context, db executor) ([]*registry.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+definitionColumns+` FROM data_source_definitions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*registry.Record
	for rows.Next() {
		rec, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func queryDeleteDefinition(ctx context.Context, db executor, name string) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM data_source_definitions WHERE name = $1`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return registry.ErrNotFound
	}
	return nil
}

// scanDefinition scans a single row into a registry.Record. The row must
// contain columns in the order defined by definitionColumns.
func scanDefinition(row scannable) (*registry.Record, error) {
	var rec registry.Record
	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.ClassType,
		&rec.Spec,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

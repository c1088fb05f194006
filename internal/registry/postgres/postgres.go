// Package postgres implements the registry.Store interface backed by a
// pg-compatible database.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/quarryml/db2source/internal/registry"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements registry.Store backed by a pg-compatible database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements registry.Store.
var _ registry.Store = (*PostgresStore)(nil)

// New opens a connection to the registry database at the given URL and runs
// any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) PutDefinition(ctx context.Context, rec *registry.Record) error {
	return queryPutDefinition(ctx, s.db, rec)
}

func (s *PostgresStore) GetDefinition(ctx context.Context, name string) (*registry.Record, error) {
	return queryGetDefinition(ctx, s.db, name)
}

func (s *PostgresStore) ListDefinitions(ctx context.Context) ([]*registry.Record, error) {
	return queryListDefinitions(ctx, s.db)
}

func (s *PostgresStore) DeleteDefinition(ctx context.Context, name string) error {
	return queryDeleteDefinition(ctx, s.db, name)
}

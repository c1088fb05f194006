package db2source

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// newMockDB creates a sqlmock database with automatic cleanup and
// expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func driverStatsColumns() *sqlmock.Rows {
	return sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("driver_id").OfType("INT8", int64(0)),
		sqlmock.NewColumn("conv_rate").OfType("FLOAT8", float64(0)),
		sqlmock.NewColumn("active").OfType("BOOL", true),
		sqlmock.NewColumn("event_ts").OfType("TIMESTAMPTZ", time.Time{}),
	)
}

func TestColumnNamesAndTypes_Table(t *testing.T) {
	db, mock := newMockDB(t)

	s, err := New(SourceConfig{Table: "DRIVERS.STATS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM \(DRIVERS.STATS\) AS sub LIMIT 0`).
		WillReturnRows(driverStatsColumns())

	cols, err := s.ColumnNamesAndTypes(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(cols))
	}
	if cols[0].Name != "driver_id" || cols[0].DBType != "INT8" {
		t.Fatalf("got %+v", cols[0])
	}
	if cols[3].Name != "event_ts" || cols[3].DBType != "TIMESTAMPTZ" {
		t.Fatalf("got %+v", cols[3])
	}
}

func TestColumnNamesAndTypes_QueryIsWrappedAsSubQuery(t *testing.T) {
	db, mock := newMockDB(t)

	s, err := New(SourceConfig{Name: "active", Query: "SELECT driver_id FROM DRIVERS.STATS WHERE active = 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The query lands double-parenthesized: once by TableQueryString, once
	// by the introspection wrapper.
	mock.ExpectQuery(`SELECT \* FROM \(\(SELECT driver_id FROM DRIVERS.STATS WHERE active = 1\)\) AS sub LIMIT 0`).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("driver_id").OfType("INT8", int64(0)),
		))

	cols, err := s.ColumnNamesAndTypes(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 1 || cols[0].Name != "driver_id" {
		t.Fatalf("got %+v", cols)
	}
}

func TestColumnNamesAndTypes_QueryError(t *testing.T) {
	db, mock := newMockDB(t)

	s, err := New(SourceConfig{Table: "MISSING.TABLE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM \(MISSING.TABLE\) AS sub LIMIT 0`).
		WillReturnError(sql.ErrConnDone)

	if _, err := s.ColumnNamesAndTypes(context.Background(), db); err == nil {
		t.Fatal("expected error when the describe query fails")
	}
}

func TestColumnValueTypes(t *testing.T) {
	db, mock := newMockDB(t)

	s, err := New(SourceConfig{Table: "DRIVERS.STATS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM \(DRIVERS.STATS\) AS sub LIMIT 0`).
		WillReturnRows(driverStatsColumns())

	cols, err := s.ColumnNamesAndTypes(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []ValueType{ValueTypeInt64, ValueTypeDouble, ValueTypeBool, ValueTypeUnixTimestamp}
	for i, col := range cols {
		if got := col.ValueType(); got != want[i] {
			t.Errorf("column %s: got %v, want %v", col.Name, got, want[i])
		}
	}
}

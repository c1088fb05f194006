// Package conn opens database connections for the connector.
//
// The connector speaks the pg-flavored protocol of the database's
// compatibility surface; github.com/lib/pq is registered as the default
// driver. Connection pooling is left to database/sql and the driver.
package conn

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

// DefaultDriver is used when Config.Driver is empty.
const DefaultDriver = "postgres"

// Config locates the database the connector reads from.
type Config struct {
	Driver   string
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// DSN builds a key/value connection string from the non-empty fields.
func (c Config) DSN() string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}

	add("host", c.Host)
	if c.Port > 0 {
		parts = append(parts, fmt.Sprintf("port=%d", c.Port))
	}
	add("dbname", c.Database)
	add("user", c.User)
	add("password", c.Password)
	add("sslmode", c.SSLMode)

	return strings.Join(parts, " ")
}

// Open opens a connection to the configured database and verifies it with
// a ping.
func Open(cfg Config) (*sql.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DefaultDriver
	}

	db, err := sql.Open(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

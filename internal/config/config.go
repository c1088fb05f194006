package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/quarryml/db2source/conn"
)

type Config struct {
	// Feature database connection
	DBDriver   string // DB2SRC_DB_DRIVER (default "postgres")
	DBHost     string // DB2SRC_DB_HOST (default "localhost")
	DBPort     int    // DB2SRC_DB_PORT (default 5432)
	DBName     string // DB2SRC_DB_NAME
	DBUser     string // DB2SRC_DB_USER
	DBPassword string // DB2SRC_DB_PASSWORD
	DBSSLMode  string // DB2SRC_DB_SSLMODE (default "disable")

	RegistryURL string // DB2SRC_REGISTRY_URL (database URL for the definition registry)
	NATSURL     string // DB2SRC_NATS_URL (optional, empty = no events)

	// Snapshot settings
	SnapshotS3Bucket   string // DB2SRC_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string // DB2SRC_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string // DB2SRC_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string // DB2SRC_SNAPSHOT_S3_KEY (default "db2source/definitions.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DBDriver:           envOrDefault("DB2SRC_DB_DRIVER", "postgres"),
		DBHost:             envOrDefault("DB2SRC_DB_HOST", "localhost"),
		DBName:             os.Getenv("DB2SRC_DB_NAME"),
		DBUser:             os.Getenv("DB2SRC_DB_USER"),
		DBPassword:         os.Getenv("DB2SRC_DB_PASSWORD"),
		DBSSLMode:          envOrDefault("DB2SRC_DB_SSLMODE", "disable"),
		RegistryURL:        os.Getenv("DB2SRC_REGISTRY_URL"),
		NATSURL:            os.Getenv("DB2SRC_NATS_URL"),
		SnapshotS3Bucket:   os.Getenv("DB2SRC_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("DB2SRC_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("DB2SRC_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("DB2SRC_SNAPSHOT_S3_KEY", "db2source/definitions.jsonl"),
	}

	portStr := envOrDefault("DB2SRC_DB_PORT", "5432")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("DB2SRC_DB_PORT: %w", err)
	}
	c.DBPort = port

	return c, nil
}

// ConnConfig returns the feature-database connection settings.
func (c *Config) ConnConfig() conn.Config {
	return conn.Config{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		Database: c.DBName,
		User:     c.DBUser,
		Password: c.DBPassword,
		SSLMode:  c.DBSSLMode,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

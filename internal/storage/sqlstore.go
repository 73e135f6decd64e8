package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"homeworkhub/internal/config"
)

// SQLStore persists collection blobs in a single key/value table, reachable
// through any of the supported dialects.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// Initialize creates and configures a SQLite-backed store (backwards compatible)
func Initialize(dbPath string) (*SQLStore, error) {
	return open(NewSQLiteDialect(), DialectConfig{Path: dbPath})
}

// InitializeWithConfig creates and configures the store based on config
func InitializeWithConfig(cfg *config.Config) (*SQLStore, error) {
	var dialect Dialect
	var dialectConfig DialectConfig

	switch strings.ToLower(cfg.DatabaseType) {
	case "postgres", "postgresql":
		dialect = NewPostgresDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "mysql":
		dialect = NewMySQLDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "sqlite", "sqlite3", "":
		dialect = NewSQLiteDialect()
		dialectConfig = DialectConfig{Path: cfg.DatabasePath}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}

	return open(dialect, dialectConfig)
}

func open(dialect Dialect, dialectConfig DialectConfig) (*SQLStore, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	// The schema is a single key/value table
	if _, err := db.Exec(dialect.CreateTableQuery()); err != nil {
		return nil, fmt.Errorf("failed to create collections table: %w", err)
	}

	return &SQLStore{db: db, dialect: dialect}, nil
}

// Read returns the blob stored for the named collection, or nil when the
// collection has never been written
func (s *SQLStore) Read(name string) ([]byte, error) {
	query := s.dialect.RewriteQuery("SELECT data FROM collections WHERE name = ?")

	var data []byte
	err := s.db.QueryRow(query, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "read", Name: name, Err: err}
	}

	return data, nil
}

// Write replaces the blob stored for the named collection
func (s *SQLStore) Write(name string, data []byte) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertQuery())

	if _, err := s.db.Exec(query, name, string(data), time.Now().UTC()); err != nil {
		return &PersistenceError{Op: "write", Name: name, Err: err}
	}

	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

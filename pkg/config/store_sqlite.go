package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// configKey is the row the engine reads; the table allows named documents
// so environments can stage alternates next to the live one.
const configKey = "scoring"

const createConfigTable = `
CREATE TABLE IF NOT EXISTS scoring_config (
	name       TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore persists scoring documents in a local sqlite database. It is
// the default Store implementation: a single table of named YAML documents
// with update timestamps.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLiteStore opens (creating if needed) the config database at path
func OpenSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	// file: URIs (in-memory databases in tests) skip filepath handling
	if !strings.HasPrefix(path, "file:") {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config db path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create config db directory: %w", err)
		}
		path = absPath
	}

	// WAL with balanced durability; the document is tiny and rarely written
	connStr := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open config database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping config database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createConfigTable); err != nil {
		return nil, fmt.Errorf("failed to create scoring_config table: %w", err)
	}

	return &SQLiteStore{
		db:  db,
		log: log.With().Str("component", "config_store").Logger(),
	}, nil
}

// ReadCurrent returns the live scoring document. Returns ErrNoConfig when
// no document has been written yet.
func (s *SQLiteStore) ReadCurrent(ctx context.Context) ([]byte, time.Time, error) {
	var document string
	var updatedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT document, updated_at FROM scoring_config WHERE name = ?", configKey).
		Scan(&document, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoConfig
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read scoring config: %w", err)
	}
	return []byte(document), time.Unix(updatedAt, 0).UTC(), nil
}

// Write upserts the live scoring document. The document is validated
// before storage so a bad write can never poison the next refresh.
func (s *SQLiteStore) Write(ctx context.Context, document []byte) error {
	if _, err := Parse(document); err != nil {
		return fmt.Errorf("refusing to store invalid scoring config: %w", err)
	}

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scoring_config (name, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`, configKey, string(document), now)
	if err != nil {
		return fmt.Errorf("failed to write scoring config: %w", err)
	}

	s.log.Info().Int("bytes", len(document)).Msg("Scoring config stored")
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

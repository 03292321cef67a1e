package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteKV stores entries in a single-table SQLite database.
type SQLiteKV struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	closed bool
}

// NewSQLiteKV opens (creating if needed) the database at path.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &Error{Op: "open", Err: fmt.Errorf("failed to create directory: %w", err)}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{Op: "open", Err: fmt.Errorf("failed to open database: %w", err)}
	}
	// One writer; several processes may share the file.
	db.SetMaxOpenConns(1)

	s := &SQLiteKV{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteKV) initialize() error {
	schema := `
	PRAGMA busy_timeout = 2000;
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return &Error{Op: "open", Err: fmt.Errorf("failed to create table: %w", err)}
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteKV) Path() string { return s.dbPath }

// Get reads key.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, &Error{Op: "get", Key: key, Err: ErrClosed}
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &Error{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set upserts key.
func (s *SQLiteKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "set", Key: key, Err: ErrClosed}
	}

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

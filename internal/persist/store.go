package persist

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
)

//go:embed schema.sql
var schemaSQL string

// Store is the SQLite-backed key-value snapshot store. It holds one
// serialized document per key and is the only durable copy of an
// assessment besides user-initiated file exports.
type Store struct {
	db *sql.DB
}

// Open creates or opens the snapshot database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// multiple times on the same path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect snapshot db: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the store's single-caller model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Put stores bytes under key, overwriting any previous snapshot.
// A write rejected for lack of space surfaces as STORAGE_EXHAUSTED with
// the recovery suggestion to export immediately.
func (s *Store) Put(ctx context.Context, key string, data []byte, savedAt string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, data, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at
	`, key, data, savedAt)
	if err != nil {
		if isFull(err) {
			return assessment.NewError(assessment.ErrCodeStorageExhausted,
				"Local storage is full. Export your assessment to a file now to avoid losing work.",
				"snapshot write rejected: %v", err)
		}
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	return nil
}

// Get returns the bytes and save time stored under key. ok is false
// when no snapshot exists.
func (s *Store) Get(ctx context.Context, key string) (data []byte, savedAt string, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data, saved_at FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&data, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", false, nil
		}
		return nil, "", false, fmt.Errorf("read snapshot %q: %w", key, err)
	}
	return data, savedAt, true, nil
}

// Remove deletes the snapshot under key. Removing a missing key is not
// an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove snapshot %q: %w", key, err)
	}
	return nil
}

func isFull(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrFull
}

// Package docstore implements the shared document-store boundary on SQLite.
// Collections are stored as rows of (collection, doc_id, JSON field map);
// batch commits are transactions, and SQLite lock errors surface as the
// contention error kind so the batch writer can retry them.
package docstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JahnaviK1725/dca-collection/internal/common"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore implements the service.DocumentStore interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite document store instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", common.ErrStoreUnavailable, err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// mapStoreError converts driver errors into the store's error taxonomy.
// Lock conflicts become the contention kind; everything else propagates
// as-is for the caller to treat as fatal.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %v", common.ErrContention, err)
		}
	}

	return err
}

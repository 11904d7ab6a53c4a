package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JahnaviK1725/dca-collection/internal/docstore"

	"github.com/spf13/viper"
)

// openStore opens the document store at the configured path and ensures the
// schema is current.
func openStore(ctx context.Context) (*docstore.SQLiteStore, error) {
	dbPath := viper.GetString("store.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/dca/dca.db"
	}
	dbPath = expandPath(dbPath)

	store, err := docstore.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// expandPath resolves $HOME and ~ prefixes in configured paths.
func expandPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	switch {
	case strings.HasPrefix(path, "$HOME/"):
		return filepath.Join(home, strings.TrimPrefix(path, "$HOME/"))
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, strings.TrimPrefix(path, "~/"))
	default:
		return path
	}
}

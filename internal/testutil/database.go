// Package testutil provides test helpers: an in-memory document store and
// case-document fixtures in the store's historical field naming.
package testutil

import (
	"context"
	"testing"

	"github.com/JahnaviK1725/dca-collection/internal/docstore"
	"github.com/JahnaviK1725/dca-collection/internal/service"
)

// SetupTestStore creates a migrated in-memory document store that is closed
// automatically when the test finishes.
func SetupTestStore(t *testing.T) *docstore.SQLiteStore {
	t.Helper()

	store, err := docstore.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedCase writes one case document into the store.
func SeedCase(t *testing.T, store *docstore.SQLiteStore, docID string, fields map[string]any) {
	t.Helper()

	if err := store.UpdateDocument(context.Background(), service.CasesCollection, docID, fields); err != nil {
		t.Fatalf("failed to seed case %s: %v", docID, err)
	}
}

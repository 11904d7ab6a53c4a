package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/JahnaviK1725/dca-collection/internal/service"
)

// ListDocuments streams every document of a collection matching all equality
// filters. Filters compare against json_extract, so nested paths are not
// supported; the pipeline only queries flat field maps.
func (s *SQLiteStore) ListDocuments(ctx context.Context, collection string, filters ...service.Filter) ([]service.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(collection, "collection"); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT doc_id, fields FROM documents WHERE collection = ?")
	args := []any{collection}

	for _, f := range filters {
		if err := validateString(f.Field, "filter field"); err != nil {
			return nil, err
		}
		sb.WriteString(fmt.Sprintf(" AND json_extract(fields, '$.%s') = ?", f.Field))
		args = append(args, filterValue(f.Value))
	}
	sb.WriteString(" ORDER BY doc_id")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("failed to query documents: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var docs []service.Document
	for rows.Next() {
		var docID, rawFields string
		if err := rows.Scan(&docID, &rawFields); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		fields := make(map[string]any)
		if err := json.Unmarshal([]byte(rawFields), &fields); err != nil {
			return nil, fmt.Errorf("document %s has corrupt fields: %w", docID, err)
		}

		docs = append(docs, service.Document{ID: docID, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, mapStoreError(fmt.Errorf("failed to iterate documents: %w", err))
	}

	return docs, nil
}

// UpdateDocument applies a single field-map update to one document,
// creating the document when it does not exist. Fields absent from the
// update are left untouched.
func (s *SQLiteStore) UpdateDocument(ctx context.Context, collection, docID string, fields map[string]any) error {
	if err := validateUpdate(ctx, collection, docID, fields); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return mergeFieldsTx(ctx, tx, collection, docID, fields)
	})
}

// AppendToArray appends values to an array-valued field, creating the array
// when the field is absent. Used for per-case history logs.
func (s *SQLiteStore) AppendToArray(ctx context.Context, collection, docID, field string, values ...any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(collection, "collection"); err != nil {
		return err
	}
	if err := validateString(docID, "docID"); err != nil {
		return err
	}
	if err := validateString(field, "field"); err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: values", ErrEmptySlice)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := readFieldsTx(ctx, tx, collection, docID)
		if err != nil {
			return err
		}

		arr, _ := current[field].([]any)
		arr = append(arr, values...)
		current[field] = arr

		return writeFieldsTx(ctx, tx, collection, docID, current)
	})
}

// CommitBatch applies all updates atomically in one transaction. Each update
// is a record-level merge-upsert. A contention-kind error means the whole
// batch was rolled back and may be retried.
func (s *SQLiteStore) CommitBatch(ctx context.Context, collection string, updates []service.FieldUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(collection, "collection"); err != nil {
		return err
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: updates", ErrEmptySlice)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			if err := validateString(u.DocID, "docID"); err != nil {
				return err
			}
			if err := mergeFieldsTx(ctx, tx, collection, u.DocID, u.Fields); err != nil {
				return err
			}
		}
		return nil
	})
}

// inTx runs fn inside an immediate transaction, mapping lock conflicts on
// begin and commit to the contention error kind.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return mapStoreError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func readFieldsTx(ctx context.Context, tx *sql.Tx, collection, docID string) (map[string]any, error) {
	var rawFields string
	err := tx.QueryRowContext(ctx,
		"SELECT fields FROM documents WHERE collection = ? AND doc_id = ?",
		collection, docID).Scan(&rawFields)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return make(map[string]any), nil
	case err != nil:
		return nil, fmt.Errorf("failed to read document %s: %w", docID, err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal([]byte(rawFields), &fields); err != nil {
		return nil, fmt.Errorf("document %s has corrupt fields: %w", docID, err)
	}
	return fields, nil
}

func writeFieldsTx(ctx context.Context, tx *sql.Tx, collection, docID string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal fields for %s: %w", docID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (collection, doc_id, fields)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET fields = excluded.fields, updated_at = CURRENT_TIMESTAMP
	`, collection, docID, string(raw))
	if err != nil {
		return fmt.Errorf("failed to write document %s: %w", docID, err)
	}
	return nil
}

func mergeFieldsTx(ctx context.Context, tx *sql.Tx, collection, docID string, fields map[string]any) error {
	current, err := readFieldsTx(ctx, tx, collection, docID)
	if err != nil {
		return err
	}

	for k, v := range fields {
		current[k] = v
	}

	return writeFieldsTx(ctx, tx, collection, docID, current)
}

// filterValue converts Go values into the representation json_extract yields.
func filterValue(v any) any {
	switch b := v.(type) {
	case bool:
		if b {
			return 1
		}
		return 0
	default:
		return v
	}
}

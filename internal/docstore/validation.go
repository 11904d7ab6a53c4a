package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrNilFields   = errors.New("fields map cannot be nil")
	ErrEmptySlice  = errors.New("slice cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUpdate validates the arguments of a single-document update.
func validateUpdate(ctx context.Context, collection, docID string, fields map[string]any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(collection, "collection"); err != nil {
		return err
	}
	if err := validateString(docID, "docID"); err != nil {
		return err
	}
	if fields == nil {
		return ErrNilFields
	}
	return nil
}

// Package normalize turns raw case documents into comparable records: it
// parses the store's mixed date encodings, converts amounts into the
// reference currency, and derives the per-record temporal metrics the
// aggregator and scorer consume. Malformed values become nil or zero; this
// package never fails a record.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

// compactLayout is the numeric calendar encoding used by the upstream
// ERP export (20240131).
const compactLayout = "20060102"

// freeFormLayouts are tried in order for non-compact date strings.
var freeFormLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a raw date field value into a midnight-UTC time.
// It accepts the compact numeric calendar format (as a number or string,
// including float-formatted strings like "20240131.0") and common free-form
// layouts. Unparseable values yield nil, never an error.
func ParseDate(raw any) *time.Time {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		return normalizeDay(v)
	case float64:
		return parseCompact(strconv.FormatInt(int64(v), 10))
	case int64:
		return parseCompact(strconv.FormatInt(v, 10))
	case int:
		return parseCompact(strconv.Itoa(v))
	case string:
		return parseDateString(v)
	default:
		return nil
	}
}

func parseDateString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Float-formatted compact dates show up when the export round-trips
	// through a spreadsheet ("20240131.0").
	if i := strings.IndexByte(s, '.'); i > 0 && isDigits(s[:i]) {
		s = s[:i]
	}

	if len(s) == 8 && isDigits(s) {
		return parseCompact(s)
	}

	for _, layout := range freeFormLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return normalizeDay(t)
		}
	}

	return nil
}

func parseCompact(s string) *time.Time {
	t, err := time.Parse(compactLayout, s)
	if err != nil {
		return nil
	}
	return normalizeDay(t)
}

// normalizeDay truncates a time to midnight UTC so day arithmetic is exact.
func normalizeDay(t time.Time) *time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

// Day normalizes an absolute time to midnight UTC. The pipeline's "today"
// reference date goes through this before any comparison.
func Day(t time.Time) time.Time {
	return *normalizeDay(t)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

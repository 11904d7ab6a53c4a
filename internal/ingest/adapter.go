// Package ingest reads the case collection and adapts its historically
// inconsistent field naming into normalized CaseRecords. The same field has
// been written under several names over the system's life; the adapter
// resolves each with an explicit precedence order instead of scattered
// lookups.
package ingest

import (
	"strconv"
	"strings"

	"github.com/JahnaviK1725/dca-collection/internal/model"
	"github.com/JahnaviK1725/dca-collection/internal/normalize"
	"github.com/JahnaviK1725/dca-collection/internal/service"
)

// Coalescing precedence, first present wins.
var (
	invoiceDateFields  = []string{"document_create_date", "invoice_date"}
	dueDateFields      = []string{"due_in_date", "due_date"}
	amountFields       = []string{"invoice_amount", "total_open_amount"}
	customerIDFields   = []string{"cust_number", "customer_id"}
	customerNameFields = []string{"name_customer", "company_name"}
	openFlagFields     = []string{"is_open", "isOpen"}
)

// AdaptDocument converts one raw store document into a normalized CaseRecord
// with derived metrics filled in. Malformed values degrade to nil/zero; a
// record is never rejected.
func AdaptDocument(doc service.Document) model.CaseRecord {
	rec := model.CaseRecord{
		DocID:        doc.ID,
		CustomerID:   coalesceString(doc.Fields, customerIDFields),
		CustomerName: coalesceString(doc.Fields, customerNameFields),
		InvoiceDate:  normalize.ParseDate(coalesce(doc.Fields, invoiceDateFields)),
		DueDate:      normalize.ParseDate(coalesce(doc.Fields, dueDateFields)),
		ClearDate:    normalize.ParseDate(doc.Fields["clear_date"]),
	}

	rec.Currency = normalize.ReferenceCurrency
	if cur, ok := doc.Fields["invoice_currency"].(string); ok && cur != "" {
		rec.Currency = cur
	}

	rawAmount := asFloat(coalesce(doc.Fields, amountFields))
	rec.Amount = normalize.NormalizeAmount(rawAmount, rec.Currency)

	if orig, ok := doc.Fields["original_amount"]; ok {
		v := asFloat(orig)
		rec.OriginalAmount = &v
	}

	rec.IsOpen = openFlag(doc.Fields, rec.ClearDate != nil)

	// Zone from the last scoring pass, if any. Scoring overwrites it; the
	// engine uses the prior value to detect records newly entering RED.
	if z, ok := doc.Fields["zone"].(string); ok {
		rec.Zone = model.Zone(z)
	}

	normalize.DeriveMetrics(&rec)

	return rec
}

// openFlag resolves the record's open/closed status. An explicit flag wins;
// otherwise a missing clear date means the receivable is still open.
func openFlag(fields map[string]any, hasClearDate bool) bool {
	for _, name := range openFlagFields {
		if v, ok := fields[name]; ok {
			return asBool(v)
		}
	}
	return !hasClearDate
}

func coalesce(fields map[string]any, names []string) any {
	for _, name := range names {
		if v, ok := fields[name]; ok && v != nil {
			return v
		}
	}
	return nil
}

func coalesceString(fields map[string]any, names []string) string {
	switch v := coalesce(fields, names).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		// Customer numbers exported through spreadsheets arrive numeric.
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// asBool tolerates every open-flag encoding the store has accumulated:
// booleans, numbers, and "0"/"1"/"true"/"false" strings.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case int64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true", "yes":
			return true
		default:
			return false
		}
	default:
		return false
	}
}

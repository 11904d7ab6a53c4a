package testutil

// Case fixtures use the compact numeric calendar encoding and the field
// names the upstream ERP export actually writes, so tests exercise the same
// coalescing paths as production data.

// ClosedCase builds a settled receivable document.
func ClosedCase(custNumber, name, invoiceDate, dueDate, clearDate string, amount float64) map[string]any {
	return map[string]any{
		"cust_number":          custNumber,
		"name_customer":        name,
		"document_create_date": invoiceDate,
		"due_in_date":          dueDate,
		"clear_date":           clearDate,
		"invoice_amount":       amount,
		"invoice_currency":     "USD",
		"is_open":              false,
		"original_amount":      amount,
	}
}

// OpenCase builds an open receivable document awaiting scoring.
func OpenCase(custNumber, name, invoiceDate, dueDate string, amount float64) map[string]any {
	return map[string]any{
		"cust_number":          custNumber,
		"name_customer":        name,
		"document_create_date": invoiceDate,
		"due_in_date":          dueDate,
		"invoice_amount":       amount,
		"invoice_currency":     "USD",
		"is_open":              true,
		"original_amount":      amount,
	}
}

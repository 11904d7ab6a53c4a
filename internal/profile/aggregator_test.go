package profile

import (
	"testing"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedRecord(cust, name string, delay int, amount float64) model.CaseRecord {
	due := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	invoice := due.AddDate(0, 0, -30)
	clear := due.AddDate(0, 0, delay)

	rec := model.CaseRecord{
		CustomerID:   cust,
		CustomerName: name,
		InvoiceDate:  &invoice,
		DueDate:      &due,
		ClearDate:    &clear,
		Amount:       amount,
	}

	d := delay
	dueDays := 30
	age := 30 + delay
	rec.PaymentDelay = &d
	rec.DueDays = &dueDays
	rec.InvoiceAge = &age
	return rec
}

func TestAggregate_CustomerWithHistory(t *testing.T) {
	history := []model.CaseRecord{
		closedRecord("C001", "Acme Corp", 10, 100),
		closedRecord("C001", "Acme Corp", -2, 200),
		closedRecord("C001", "Acme Corp", 4, 300),
	}

	profiles := Aggregate(history, nil)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, "C001", p.CustomerID)
	assert.Equal(t, "Acme Corp", p.DisplayName)
	assert.Equal(t, 3, p.TransactionCount)
	assert.InDelta(t, 4.0, p.AvgDelay, 1e-9)
	assert.InDelta(t, 6.0, p.StdDelay, 1e-9) // sample std of {10,-2,4}
	assert.InDelta(t, -2.0, p.MinDelay, 1e-9)
	assert.InDelta(t, 10.0, p.MaxDelay, 1e-9)
	assert.InDelta(t, 34.0, p.AvgDaysToClear, 1e-9) // mean of {40,28,34}
	assert.InDelta(t, 30.0, p.AvgDueDays, 1e-9)
	assert.InDelta(t, 200.0, p.AvgAmount, 1e-9)
	assert.InDelta(t, 600.0, p.LifetimeValue, 1e-9)
	// 2 of 3 records cleared past due
	assert.InDelta(t, 2.0/3.0, p.LateRatio, 1e-9)
}

func TestAggregate_ColdStartDefaults(t *testing.T) {
	open := []model.CaseRecord{
		{CustomerID: "C999", CustomerName: "New Co", IsOpen: true},
	}

	profiles := Aggregate(nil, open)
	require.Len(t, profiles, 1)

	want := model.CompanyProfile{
		CustomerID:     "C999",
		DisplayName:    "New Co",
		AvgDaysToClear: 30,
		AvgDueDays:     30,
	}
	assert.Equal(t, want, profiles[0])
}

func TestAggregate_UniverseCoversOpenOnlyCustomers(t *testing.T) {
	history := []model.CaseRecord{closedRecord("C001", "Acme", 5, 100)}
	open := []model.CaseRecord{
		{CustomerID: "C002", CustomerName: "Beta", IsOpen: true},
		{CustomerID: "C001", CustomerName: "Acme", IsOpen: true},
	}

	profiles := Aggregate(history, open)
	require.Len(t, profiles, 2)

	// Stable ordering by customer id.
	assert.Equal(t, "C001", profiles[0].CustomerID)
	assert.Equal(t, 1, profiles[0].TransactionCount)
	assert.Equal(t, "C002", profiles[1].CustomerID)
	assert.Equal(t, 0, profiles[1].TransactionCount)
}

func TestAggregate_SingleRecordStdIsZero(t *testing.T) {
	profiles := Aggregate([]model.CaseRecord{closedRecord("C001", "Acme", 7, 50)}, nil)
	require.Len(t, profiles, 1)

	assert.Zero(t, profiles[0].StdDelay)
	assert.InDelta(t, 7.0, profiles[0].AvgDelay, 1e-9)
	assert.InDelta(t, 1.0, profiles[0].LateRatio, 1e-9)
}

func TestAggregate_NilDelaysSkipped(t *testing.T) {
	withoutDates := model.CaseRecord{CustomerID: "C001", CustomerName: "Acme", Amount: 100}

	profiles := Aggregate([]model.CaseRecord{
		withoutDates,
		closedRecord("C001", "Acme", 6, 200),
	}, nil)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.Equal(t, 2, p.TransactionCount)
	assert.InDelta(t, 6.0, p.AvgDelay, 1e-9)
	// late_ratio counts against all closed records, not just dated ones
	assert.InDelta(t, 0.5, p.LateRatio, 1e-9)
	assert.InDelta(t, 150.0, p.AvgAmount, 1e-9)
	assert.InDelta(t, 300.0, p.LifetimeValue, 1e-9)
}

func TestDisplayNames_MostFrequentWinsTieFirstSeen(t *testing.T) {
	history := []model.CaseRecord{
		closedRecord("C001", "Acme Corp", 1, 10),
		closedRecord("C001", "Acme Corporation", 1, 10),
		closedRecord("C001", "Acme Corp", 1, 10),
	}
	open := []model.CaseRecord{
		{CustomerID: "C002", CustomerName: "First Name", IsOpen: true},
		{CustomerID: "C002", CustomerName: "Second Name", IsOpen: true},
	}

	profiles := Aggregate(history, open)
	require.Len(t, profiles, 2)

	assert.Equal(t, "Acme Corp", profiles[0].DisplayName)
	// Tie between two single-occurrence names: first encountered wins.
	assert.Equal(t, "First Name", profiles[1].DisplayName)
}

func TestFieldMap(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	p := model.CompanyProfile{
		CustomerID:       "C001",
		DisplayName:      "Acme Corp",
		AvgDelay:         4,
		StdDelay:         6,
		MinDelay:         -2,
		MaxDelay:         10,
		AvgDaysToClear:   34,
		AvgDueDays:       30,
		AvgAmount:        200,
		LifetimeValue:    600,
		TransactionCount: 3,
		LateRatio:        2.0 / 3.0,
	}

	fields := FieldMap(p, now)

	assert.Equal(t, "C001", fields["cust_number"])
	assert.Equal(t, "Acme Corp", fields["company_name"])
	assert.Equal(t, 3, fields["transaction_count"])
	assert.Equal(t, "2026-03-01T12:00:00Z", fields["last_updated_at"])
	assert.InDelta(t, 2.0/3.0, fields["late_payment_ratio"].(float64), 1e-9)
}

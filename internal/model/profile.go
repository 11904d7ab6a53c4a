package model

// CompanyProfile aggregates a customer's historical payment behavior over
// closed records. Profiles are rebuilt in full on every pipeline run and
// merge-upserted into the company_features collection.
type CompanyProfile struct {
	CustomerID  string
	DisplayName string

	AvgDelay         float64
	StdDelay         float64
	MinDelay         float64
	MaxDelay         float64
	AvgDaysToClear   float64
	AvgDueDays       float64
	AvgAmount        float64
	LifetimeValue    float64
	TransactionCount int
	LateRatio        float64
}

// Cold-start defaults for customers with no closed-record history.
const (
	ColdStartAvgDaysToClear = 30.0
	ColdStartAvgDueDays     = 30.0
)

// ColdStartProfile returns the profile assigned to a customer that has no
// closed records yet.
func ColdStartProfile(customerID, displayName string) CompanyProfile {
	return CompanyProfile{
		CustomerID:     customerID,
		DisplayName:    displayName,
		AvgDaysToClear: ColdStartAvgDaysToClear,
		AvgDueDays:     ColdStartAvgDueDays,
	}
}

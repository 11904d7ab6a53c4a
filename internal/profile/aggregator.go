// Package profile rebuilds per-customer payment-behavior profiles from
// closed case records. Profiles are a full re-derivation on every run;
// nothing is updated incrementally.
package profile

import (
	"math"
	"sort"

	"github.com/JahnaviK1725/dca-collection/internal/model"
)

// Aggregate builds one CompanyProfile per customer id referenced by either
// set. Customers appearing only through open records get the cold-start
// defaults, so every open record can be joined against a profile.
func Aggregate(history, open []model.CaseRecord) []model.CompanyProfile {
	names := displayNames(history, open)

	grouped := make(map[string][]model.CaseRecord)
	for _, r := range history {
		grouped[r.CustomerID] = append(grouped[r.CustomerID], r)
	}

	universe := customerUniverse(history, open)

	profiles := make([]model.CompanyProfile, 0, len(universe))
	for _, id := range universe {
		rows := grouped[id]
		if len(rows) == 0 {
			profiles = append(profiles, model.ColdStartProfile(id, names[id]))
			continue
		}
		profiles = append(profiles, aggregateCustomer(id, names[id], rows))
	}

	return profiles
}

func aggregateCustomer(id, name string, rows []model.CaseRecord) model.CompanyProfile {
	p := model.CompanyProfile{
		CustomerID:       id,
		DisplayName:      name,
		TransactionCount: len(rows),
	}

	var delays, clearAges, dueDays []float64
	lateCount := 0

	for _, r := range rows {
		p.LifetimeValue += r.Amount

		if r.PaymentDelay != nil {
			delays = append(delays, float64(*r.PaymentDelay))
			if *r.PaymentDelay > 0 {
				lateCount++
			}
		}
		if r.InvoiceAge != nil {
			clearAges = append(clearAges, float64(*r.InvoiceAge))
		}
		if r.DueDays != nil {
			dueDays = append(dueDays, float64(*r.DueDays))
		}
	}

	p.AvgAmount = p.LifetimeValue / float64(len(rows))
	p.AvgDelay = mean(delays)
	p.StdDelay = sampleStd(delays)
	p.MinDelay, p.MaxDelay = minMax(delays)
	p.AvgDaysToClear = mean(clearAges)
	p.AvgDueDays = mean(dueDays)
	p.LateRatio = float64(lateCount) / float64(len(rows))

	return p
}

// displayNames picks the most frequent customer name across ALL records for
// each id, ties broken by first encounter.
func displayNames(sets ...[]model.CaseRecord) map[string]string {
	type nameCount struct {
		count int
		order int
	}
	counts := make(map[string]map[string]*nameCount)
	seen := 0

	for _, set := range sets {
		for _, r := range set {
			if r.CustomerName == "" {
				continue
			}
			byName := counts[r.CustomerID]
			if byName == nil {
				byName = make(map[string]*nameCount)
				counts[r.CustomerID] = byName
			}
			if nc, ok := byName[r.CustomerName]; ok {
				nc.count++
			} else {
				byName[r.CustomerName] = &nameCount{count: 1, order: seen}
			}
			seen++
		}
	}

	names := make(map[string]string, len(counts))
	for id, byName := range counts {
		best := ""
		bestCount, bestOrder := 0, 0
		for name, nc := range byName {
			if nc.count > bestCount || (nc.count == bestCount && nc.order < bestOrder) {
				best, bestCount, bestOrder = name, nc.count, nc.order
			}
		}
		names[id] = best
	}
	return names
}

// customerUniverse returns every customer id from both sets in a stable
// order, so repeated runs emit profiles deterministically.
func customerUniverse(history, open []model.CaseRecord) []string {
	set := make(map[string]struct{})
	for _, r := range history {
		set[r.CustomerID] = struct{}{}
	}
	for _, r := range open {
		set[r.CustomerID] = struct{}{}
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the n-1 standard deviation, 0 when fewer than two samples.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func minMax(xs []float64) (minV, maxV float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	minV, maxV = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
	}
	return minV, maxV
}

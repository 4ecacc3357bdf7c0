package domain

import (
	"sort"
	"time"
)

// EventKindCommit is the only contribution kind the sampler produces.
const EventKindCommit = "commit"

// ContributionEvent is one authored commit found while sampling.
type ContributionEvent struct {
	Timestamp  time.Time
	Repository string
	Kind       string
}

// LanguageTally maps a language name to the number of repositories using it.
type LanguageTally map[string]int

// MonthlyActivity maps a YYYY-MM key to the number of events in that month.
type MonthlyActivity map[string]int

// Months returns the month keys in ascending order.
func (m MonthlyActivity) Months() []string {
	months := make([]string, 0, len(m))
	for month := range m {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

// DataPoint is one labeled value of a chart series.
type DataPoint struct {
	Label string
	Value int
}

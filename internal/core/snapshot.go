package core

import (
	"sort"

	"github.com/JonMunkholm/migdash/internal/dataset"
)

// Snapshot is the read-only state every view is computed from: the loaded
// tables plus the aggregates derived from them at startup.
//
// Nothing mutates a Snapshot after NewSnapshot returns, so it is safe to
// share between concurrent requests.
type Snapshot struct {
	flows      []dataset.FlowRecord
	indicators []dataset.IndicatorRecord
	summary    []CountryYearSummary
	averages   []YearlyGlobalAverage
	countries  []string
	countrySet map[string]struct{}
	mapYears   []int
}

// NewSnapshot derives the aggregate tables once.
func NewSnapshot(t *dataset.Tables) *Snapshot {
	if t == nil {
		t = &dataset.Tables{}
	}

	s := &Snapshot{
		flows:      t.Flows,
		indicators: t.Indicators,
		summary:    BuildCountryYearSummary(t.Flows),
		averages:   BuildYearlyAverages(t.Indicators),
		countrySet: make(map[string]struct{}),
	}

	for _, r := range t.Indicators {
		if _, seen := s.countrySet[r.Country]; seen {
			continue
		}
		s.countrySet[r.Country] = struct{}{}
		s.countries = append(s.countries, r.Country)
	}

	years := make(map[int]struct{})
	for _, row := range s.summary {
		years[row.Year] = struct{}{}
	}
	for y := range years {
		s.mapYears = append(s.mapYears, y)
	}
	sort.Ints(s.mapYears)

	return s
}

// Flows returns the flow table.
func (s *Snapshot) Flows() []dataset.FlowRecord { return s.flows }

// Indicators returns the indicator table.
func (s *Snapshot) Indicators() []dataset.IndicatorRecord { return s.indicators }

// Summary returns the per-country-per-year totals.
func (s *Snapshot) Summary() []CountryYearSummary { return s.summary }

// Averages returns the yearly global averages, sorted by year.
func (s *Snapshot) Averages() []YearlyGlobalAverage { return s.averages }

// Countries returns the distinct indicator countries in first-seen order.
func (s *Snapshot) Countries() []string { return s.countries }

// HasCountry reports whether country appears in the indicator table.
func (s *Snapshot) HasCountry(country string) bool {
	_, ok := s.countrySet[country]
	return ok
}

// MapYears returns the distinct years of the summary table, ascending.
func (s *Snapshot) MapYears() []int { return s.mapYears }

// flowsFor returns the flow rows of one country-year in table order.
func (s *Snapshot) flowsFor(country string, year int) []dataset.FlowRecord {
	var out []dataset.FlowRecord
	for _, f := range s.flows {
		if f.Year == year && f.Country == country {
			out = append(out, f)
		}
	}
	return out
}

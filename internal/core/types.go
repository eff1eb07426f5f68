package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/dataset"
)

var (
	ErrUnknownCountry  = errors.New("unknown country")
	ErrYearOutOfRange  = errors.New("year out of range")
	ErrUnknownVariable = errors.New("unknown migration variable")
	ErrUnknownPanel    = errors.New("unknown chart panel")
)

// MigrationVariable selects which normalised column colours the map.
type MigrationVariable string

const (
	NormNet     MigrationVariable = "normNet"
	NormInflow  MigrationVariable = "normInflow"
	NormOutflow MigrationVariable = "normOutflow"
)

// Variables lists the selectable migration variables in display order.
var Variables = []MigrationVariable{NormNet, NormInflow, NormOutflow}

// ParseMigrationVariable accepts "normNet" style values as well as the
// spaced spreadsheet spelling ("norm Net"), case-insensitively.
func ParseMigrationVariable(s string) (MigrationVariable, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, v := range Variables {
		if strings.ToLower(string(v)) == key {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariable, s)
}

// Label is the radio-button label.
func (v MigrationVariable) Label() string {
	switch v {
	case NormInflow:
		return "Migration Inflow"
	case NormOutflow:
		return "Migration Outflow"
	default:
		return "Net-Migration"
	}
}

// Title is the display name used in the map title.
func (v MigrationVariable) Title() string {
	switch v {
	case NormInflow:
		return "Migrants Inflow"
	case NormOutflow:
		return "Migrants Outflow"
	default:
		return "Net-Migration"
	}
}

// RawField names the un-normalised column shown on hover.
func (v MigrationVariable) RawField() string {
	switch v {
	case NormInflow:
		return dataset.ColInflow
	case NormOutflow:
		return dataset.ColOutflow
	default:
		return dataset.ColNetMigration
	}
}

// Selection is the user's current choice of country, year and map variable.
type Selection struct {
	Country  string            `json:"country"`
	Year     int               `json:"year"`
	Variable MigrationVariable `json:"variable"`
}

// CountryYearSummary is the per-country-per-year flow total with
// min-max normalised columns.
type CountryYearSummary struct {
	Country      string  `json:"country"`
	Year         int     `json:"year"`
	Inflow       float64 `json:"inflow"`
	Outflow      float64 `json:"outflow"`
	NetMigration float64 `json:"netMigration"`
	NormInflow   float64 `json:"normInflow"`
	NormOutflow  float64 `json:"normOutflow"`
	NormNet      float64 `json:"normNet"`
}

// Norm returns the normalised column selected by v.
func (s CountryYearSummary) Norm(v MigrationVariable) float64 {
	switch v {
	case NormInflow:
		return s.NormInflow
	case NormOutflow:
		return s.NormOutflow
	default:
		return s.NormNet
	}
}

// Raw returns the un-normalised column paired with v.
func (s CountryYearSummary) Raw(v MigrationVariable) float64 {
	switch v {
	case NormInflow:
		return s.Inflow
	case NormOutflow:
		return s.Outflow
	default:
		return s.NetMigration
	}
}

// YearlyGlobalAverage is the mean of every indicator column across all
// countries for one year. Columns with no values for the year are absent.
type YearlyGlobalAverage struct {
	Year   int                   `json:"year"`
	Values map[Indicator]float64 `json:"values"`
}

// Value returns the average for ind, NaN when absent.
func (a YearlyGlobalAverage) Value(ind Indicator) float64 {
	v, ok := a.Values[ind]
	if !ok {
		return dataset.Missing()
	}
	return v
}

// Window is an inclusive range of years.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether year lies in the window.
func (w Window) Contains(year int) bool {
	return year >= w.Start && year <= w.End
}

// Summary holds the text boxes shown above the charts.
type Summary struct {
	Heading   string `json:"heading"`
	Inflow    string `json:"inflow"`
	Outflow   string `json:"outflow"`
	Direction string `json:"direction"` // "entering" or "leaving"
	Sentence  string `json:"sentence"`
}

// ViewModel is everything the dashboard shows for one selection.
type ViewModel struct {
	Selection  Selection      `json:"selection"`
	Window     Window         `json:"window"`
	Summary    Summary        `json:"summary"`
	Choropleth chart.Figure   `json:"choropleth"`
	Inflow     chart.Figure   `json:"inflow"`
	Outflow    chart.Figure   `json:"outflow"`
	Indicators []chart.Figure `json:"indicators"`
	FlowTrend  chart.Figure   `json:"flowTrend"`
}

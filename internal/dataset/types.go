// Package dataset loads the migration flow and migration indicator tables.
//
// Both tables are read once at startup and are never mutated afterwards.
// Sources are pluggable through [Source]: spreadsheets via [XLSXSource] or
// PostgreSQL tables via [PostgresSource].
package dataset

import (
	"context"
	"errors"
	"math"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidNumber = errors.New("invalid number")
	ErrEmptySheet    = errors.New("empty sheet")
)

// Column headers as they appear in the source spreadsheets.
const (
	ColCountry        = "Country"
	ColYear           = "Year"
	ColOrigin         = "Country of origin"
	ColInflow         = "Inflow"
	ColOutflow        = "Outflow"
	ColNetMigration   = "Net-Migration"
	ColGDP            = "GDP per capita"
	ColStability      = "Political stability index (-2.5 weak; 2.5 strong)"
	ColHealthSpending = "Health spending per capita"
	ColConflictDeaths = "Deaths - Conflict and terrorism"
)

// FlowColumns lists the required headers of the flow sheet.
var FlowColumns = []string{ColCountry, ColYear, ColOrigin, ColInflow, ColOutflow, ColNetMigration}

// IndicatorColumns lists the required headers of the indicator sheet.
var IndicatorColumns = []string{
	ColCountry, ColYear,
	ColGDP, ColStability, ColHealthSpending, ColConflictDeaths,
	ColInflow, ColOutflow,
}

// FlowRecord is one (country, year, origin) migration flow.
type FlowRecord struct {
	Country      string
	Year         int
	Origin       string
	Inflow       float64
	Outflow      float64
	NetMigration float64
}

// IndicatorRecord holds the socio-economic indicators of one country-year.
// Missing cells are NaN.
type IndicatorRecord struct {
	Country            string
	Year               int
	GDPPerCapita       float64
	PoliticalStability float64
	HealthSpending     float64
	ConflictDeaths     float64
	Inflow             float64
	Outflow            float64
}

// Tables is the immutable pair of loaded tables.
type Tables struct {
	Flows      []FlowRecord
	Indicators []IndicatorRecord
}

// Source loads both tables.
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}

// Missing is the value stored for a blank indicator cell.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v represents a blank cell.
func IsMissing(v float64) bool { return math.IsNaN(v) }

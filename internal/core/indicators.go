package core

import (
	"fmt"

	"github.com/JonMunkholm/migdash/internal/dataset"
)

// Indicator identifies a numeric column of the indicator table.
type Indicator string

const (
	ConflictDeaths     Indicator = "deaths"
	GDPPerCapita       Indicator = "gdp"
	PoliticalStability Indicator = "stability"
	HealthSpending     Indicator = "health"
	IndicatorInflow    Indicator = "inflow"
	IndicatorOutflow   Indicator = "outflow"
)

// AllIndicators lists every numeric indicator column.
var AllIndicators = []Indicator{
	ConflictDeaths, GDPPerCapita, PoliticalStability, HealthSpending,
	IndicatorInflow, IndicatorOutflow,
}

// PanelIndicators are the four indicators drawn as bar+line panels, in page order.
var PanelIndicators = []Indicator{ConflictDeaths, GDPPerCapita, PoliticalStability, HealthSpending}

// ParseIndicator resolves a panel key such as "gdp".
func ParseIndicator(s string) (Indicator, error) {
	for _, ind := range AllIndicators {
		if string(ind) == s {
			return ind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPanel, s)
}

// Column returns the spreadsheet header of the indicator.
func (ind Indicator) Column() string {
	switch ind {
	case ConflictDeaths:
		return dataset.ColConflictDeaths
	case GDPPerCapita:
		return dataset.ColGDP
	case PoliticalStability:
		return dataset.ColStability
	case HealthSpending:
		return dataset.ColHealthSpending
	case IndicatorInflow:
		return dataset.ColInflow
	case IndicatorOutflow:
		return dataset.ColOutflow
	}
	return string(ind)
}

// indicatorValue reads one indicator from a record.
func indicatorValue(r dataset.IndicatorRecord, ind Indicator) float64 {
	switch ind {
	case ConflictDeaths:
		return r.ConflictDeaths
	case GDPPerCapita:
		return r.GDPPerCapita
	case PoliticalStability:
		return r.PoliticalStability
	case HealthSpending:
		return r.HealthSpending
	case IndicatorInflow:
		return r.Inflow
	case IndicatorOutflow:
		return r.Outflow
	}
	return dataset.Missing()
}

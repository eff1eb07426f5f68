package core

import "github.com/JonMunkholm/migdash/internal/chart"

// PanelSpec configures one indicator panel.
type PanelSpec struct {
	Title  string
	YTitle string
	YRange chart.Range
	Legend bool // show the global-average line in the legend
}

// Options holds the display policy applied by the view functions.
type Options struct {
	YearMin        int
	YearMax        int
	DefaultCountry string
	DefaultYear    int
	Panels         map[Indicator]PanelSpec

	// DynamicAxes replaces the fixed panel y-ranges with bounds computed
	// from the plotted values.
	DynamicAxes bool
}

// DefaultPanels returns the fixed panel layout. The y-ranges cover the
// extremes of the shipped dataset so axes stay put across selections.
func DefaultPanels() map[Indicator]PanelSpec {
	return map[Indicator]PanelSpec{
		ConflictDeaths: {
			Title:  "Deaths due to <br>conflicts and terrorism",
			YTitle: "Number of deaths per 100000 inhab",
			YRange: chart.Range{From: 0, To: 765},
		},
		GDPPerCapita: {
			Title:  "GDP per capita",
			YTitle: "US Dollars",
			YRange: chart.Range{From: 0, To: 130000},
		},
		PoliticalStability: {
			Title:  "Political stability",
			YTitle: "Stability index (-2.5 weak; 2.5 strong)",
			YRange: chart.Range{From: -2.5, To: 2.5},
		},
		HealthSpending: {
			Title:  "Health spending per capita",
			YTitle: "US Dollars",
			YRange: chart.Range{From: 0, To: 10250},
			Legend: true,
		},
	}
}

// DefaultOptions mirrors the dashboard's shipped configuration.
func DefaultOptions() Options {
	return Options{
		YearMin:        2008,
		YearMax:        2017,
		DefaultCountry: "Afghanistan",
		DefaultYear:    2017,
		Panels:         DefaultPanels(),
	}
}

// panel returns the spec for ind, falling back to the default.
func (o Options) panel(ind Indicator) PanelSpec {
	if spec, ok := o.Panels[ind]; ok {
		return spec
	}
	return DefaultPanels()[ind]
}

// Package templates renders the dashboard's HTML with templ components.
package templates

import (
	"strconv"

	"github.com/JonMunkholm/migdash/internal/core"
)

// VariableOption is one radio button of the migration-variable choice.
type VariableOption struct {
	Value string
	Label string
}

// ChartImage is one server-rendered chart panel.
type ChartImage struct {
	Panel string
	Alt   string
	URL   string
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	Countries []string
	YearMin   int
	YearMax   int
	Variables []VariableOption
	Selection core.Selection
	Window    core.Window
	Summary   core.Summary
	Flows     []ChartImage // top-10 inflow and outflow
	Panels    []ChartImage // indicator panels
	Trend     ChartImage
	MapURL    string
}

func windowCaption(country string, w core.Window) string {
	return country + ", " + strconv.Itoa(w.Start) + "-" + strconv.Itoa(w.End)
}

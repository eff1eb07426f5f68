package core

import (
	"math"
	"strconv"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/dataset"
)

const (
	panelBarColor  = "rgb(239,225,156)"
	averageColor   = "#000000"
	averageName    = "Global annual average"
	trendInColor   = "#237924"
	trendOutColor  = "#cc0000"
	trendAxisSlack = 100
)

// countryWindow returns the indicator rows of country whose year lies in w,
// in table order.
func countryWindow(snap *Snapshot, country string, w Window) []dataset.IndicatorRecord {
	var out []dataset.IndicatorRecord
	for _, r := range snap.indicators {
		if r.Country == country && w.Contains(r.Year) {
			out = append(out, r)
		}
	}
	return out
}

// IndicatorPanel builds the bar+line panel for one indicator: the selected
// country's yearly values as bars and the global annual average as a line,
// both restricted to the trailing window.
func IndicatorPanel(snap *Snapshot, sel Selection, ind Indicator, opts Options) chart.Figure {
	spec := opts.panel(ind)
	w := ResolveWindow(sel.Year)

	var bx, by []float64
	for _, r := range countryWindow(snap, sel.Country, w) {
		bx = append(bx, float64(r.Year))
		by = append(by, indicatorValue(r, ind))
	}

	var lx, ly []float64
	for _, a := range snap.averages {
		if !w.Contains(a.Year) {
			continue
		}
		lx = append(lx, float64(a.Year))
		ly = append(ly, a.Value(ind))
	}

	yr := spec.YRange
	if opts.DynamicAxes {
		yr = dynamicRange(spec.YRange, by, ly)
	}

	return chart.Figure{
		Title: spec.Title,
		Series: []chart.Series{
			{
				Kind:        chart.KindBar,
				Name:        sel.Country,
				Orientation: chart.Vertical,
				X:           bx,
				Y:           by,
				Color:       panelBarColor,
			},
			{
				Kind:       chart.KindLine,
				Name:       averageName,
				X:          lx,
				Y:          ly,
				Color:      averageColor,
				ShowLegend: spec.Legend,
			},
		},
		XAxis:      chart.Axis{LinearTicks: true, TickAngle: -90},
		YAxis:      chart.Axis{Title: spec.YTitle, Range: &yr},
		ShowLegend: spec.Legend,
	}
}

// IndicatorPanels builds the four indicator panels in page order.
func IndicatorPanels(snap *Snapshot, sel Selection, opts Options) []chart.Figure {
	out := make([]chart.Figure, 0, len(PanelIndicators))
	for _, ind := range PanelIndicators {
		out = append(out, IndicatorPanel(snap, sel, ind, opts))
	}
	return out
}

// dynamicRange spans the finite values plus 10% headroom, always including
// zero. With no finite values it keeps the fixed range.
func dynamicRange(fixed chart.Range, series ...[]float64) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			if dataset.IsMissing(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return fixed
	}

	from, to := math.Min(0, lo), math.Max(0, hi)
	pad := (to - from) * 0.1
	if pad == 0 {
		pad = 1
	}
	if from < 0 {
		from -= pad
	}
	return chart.Range{From: from, To: to + pad}
}

// FlowTrend builds the inflow/outflow line chart of the selected country over
// the trailing window. Values come from the indicator table. The y-axis tops
// out at the window maximum plus a fixed slack.
func FlowTrend(snap *Snapshot, sel Selection) chart.Figure {
	w := ResolveWindow(sel.Year)
	rows := countryWindow(snap, sel.Country, w)

	x := make([]float64, len(rows))
	in := make([]float64, len(rows))
	out := make([]float64, len(rows))
	var peak float64
	for i, r := range rows {
		x[i] = float64(r.Year)
		in[i] = r.Inflow
		out[i] = r.Outflow
		if !dataset.IsMissing(r.Inflow) {
			peak = math.Max(peak, r.Inflow)
		}
		if !dataset.IsMissing(r.Outflow) {
			peak = math.Max(peak, r.Outflow)
		}
	}

	title := "Inflow vs Outflow: " + sel.Country + "<br> from " +
		strconv.Itoa(w.Start) + " to " + strconv.Itoa(w.End)

	return chart.Figure{
		Title: title,
		Series: []chart.Series{
			{Kind: chart.KindLine, Name: "Inflow", X: x, Y: in, Color: trendInColor, ShowLegend: true},
			{Kind: chart.KindLine, Name: "Outflow", X: x, Y: out, Color: trendOutColor, ShowLegend: true},
		},
		XAxis: chart.Axis{
			Title:       "Year",
			Range:       &chart.Range{From: float64(w.Start), To: float64(w.End)},
			LinearTicks: true,
		},
		YAxis:      chart.Axis{Title: "Number of migrants", Range: &chart.Range{From: 0, To: peak + trendAxisSlack}},
		ShowLegend: true,
	}
}

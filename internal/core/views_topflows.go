package core

import (
	"math"
	"sort"
	"strconv"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/dataset"
)

const (
	topOriginCount = 10
	flowAxisMargin = 500
)

const (
	inflowColor  = "rgb(35,132,67)"
	outflowColor = "rgb(203,24,29)"
)

func inflowOf(f dataset.FlowRecord) float64  { return f.Inflow }
func outflowOf(f dataset.FlowRecord) float64 { return f.Outflow }

// TopOrigins keeps rows whose value is positive, sorts them descending
// (stable, so ties keep table order) and returns at most n of them.
func TopOrigins(rows []dataset.FlowRecord, value func(dataset.FlowRecord) float64, n int) []dataset.FlowRecord {
	var picked []dataset.FlowRecord
	for _, r := range rows {
		if value(r) > 0 {
			picked = append(picked, r)
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return value(picked[i]) > value(picked[j])
	})

	if len(picked) > n {
		picked = picked[:n]
	}
	return picked
}

// SharedFlowBound is the common axis bound of the paired bar charts:
// the larger of the two top values plus a margin. An empty side counts as 0.
func SharedFlowBound(topIn, topOut []dataset.FlowRecord) float64 {
	var maxIn, maxOut float64
	if len(topIn) > 0 {
		maxIn = topIn[0].Inflow
	}
	if len(topOut) > 0 {
		maxOut = topOut[0].Outflow
	}
	return math.Max(maxIn, maxOut) + flowAxisMargin
}

// TopFlows builds the back-to-back inflow/outflow bar charts for a
// country-year. The outflow axis is reversed so the bars mirror the inflow chart.
func TopFlows(snap *Snapshot, sel Selection) (inflow, outflow chart.Figure) {
	rows := snap.flowsFor(sel.Country, sel.Year)
	topIn := TopOrigins(rows, inflowOf, topOriginCount)
	topOut := TopOrigins(rows, outflowOf, topOriginCount)
	bound := SharedFlowBound(topIn, topOut)

	suffix := "<br>" + sel.Country + ", " + strconv.Itoa(sel.Year)

	inflow = flowBars("Migration inflow - Top-10 countries"+suffix, topIn, inflowOf, inflowColor,
		chart.Range{From: 0, To: bound})
	outflow = flowBars("Migration outflow - Top-10 countries"+suffix, topOut, outflowOf, outflowColor,
		chart.Range{From: bound, To: 0})
	return inflow, outflow
}

func flowBars(title string, rows []dataset.FlowRecord, value func(dataset.FlowRecord) float64, color string, xr chart.Range) chart.Figure {
	values := make([]float64, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		values[i] = value(r)
		labels[i] = r.Origin
	}

	return chart.Figure{
		Title: title,
		Series: []chart.Series{{
			Kind:        chart.KindBar,
			Orientation: chart.Horizontal,
			X:           values,
			Labels:      labels,
			Color:       color,
		}},
		XAxis: chart.Axis{Title: "Number of migrants", Range: &xr},
		YAxis: chart.Axis{CategoryReversed: true},
	}
}

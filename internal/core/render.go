package core

import "github.com/JonMunkholm/migdash/internal/chart"

// Chart panel names addressable by the web layer, in page order.
const (
	PanelInflow  = "inflow"
	PanelOutflow = "outflow"
	PanelFlows   = "flows"
)

// Panels lists every single-chart panel.
var Panels = []string{
	PanelInflow, PanelOutflow,
	string(ConflictDeaths), string(GDPPerCapita), string(PoliticalStability), string(HealthSpending),
	PanelFlows,
}

// Render computes every view for sel. It is a pure function of its inputs.
func Render(snap *Snapshot, sel Selection, opts Options) (ViewModel, error) {
	if err := ValidateSelection(snap, opts, sel); err != nil {
		return ViewModel{}, err
	}

	inflow, outflow := TopFlows(snap, sel)
	return ViewModel{
		Selection:  sel,
		Window:     ResolveWindow(sel.Year),
		Summary:    SummaryView(snap, sel),
		Choropleth: Choropleth(snap, sel.Variable),
		Inflow:     inflow,
		Outflow:    outflow,
		Indicators: IndicatorPanels(snap, sel, opts),
		FlowTrend:  FlowTrend(snap, sel),
	}, nil
}

// RenderPanel computes a single named chart for sel.
func RenderPanel(snap *Snapshot, sel Selection, opts Options, name string) (chart.Figure, error) {
	if err := ValidateSelection(snap, opts, sel); err != nil {
		return chart.Figure{}, err
	}

	switch name {
	case PanelInflow:
		in, _ := TopFlows(snap, sel)
		return in, nil
	case PanelOutflow:
		_, out := TopFlows(snap, sel)
		return out, nil
	case PanelFlows:
		return FlowTrend(snap, sel), nil
	}

	ind, err := ParseIndicator(name)
	if err != nil {
		return chart.Figure{}, err
	}
	return IndicatorPanel(snap, sel, ind, opts), nil
}

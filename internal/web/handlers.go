package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/migdash/internal/core"
	"github.com/JonMunkholm/migdash/internal/web/templates"
)

// panelAlt describes each PNG panel for the img alt text.
var panelAlt = map[string]string{
	core.PanelInflow:                 "Top-10 countries of origin by inflow",
	core.PanelOutflow:                "Top-10 destination countries by outflow",
	string(core.ConflictDeaths):     "Deaths due to conflicts and terrorism",
	string(core.GDPPerCapita):       "GDP per capita",
	string(core.PoliticalStability): "Political stability",
	string(core.HealthSpending):     "Health spending per capita",
	core.PanelFlows:                  "Inflow vs outflow over time",
}

// handleDashboard renders the main dashboard page. Query parameters update
// the session selection before rendering. htmx requests get only the views
// fragment.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := s.requestSelection(w, r, true)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	vm, err := s.service.View(ctx, sel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data := s.dashboardData(vm)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		templates.Views(data).Render(ctx, w)
		return
	}
	templates.Dashboard(data).Render(ctx, w)
}

// dashboardData builds the template input for a computed view.
func (s *Server) dashboardData(vm core.ViewModel) templates.DashboardData {
	lo, hi := s.service.YearBounds()

	variables := make([]templates.VariableOption, 0, len(core.Variables))
	for _, v := range s.service.Variables() {
		variables = append(variables, templates.VariableOption{Value: string(v), Label: v.Label()})
	}

	data := templates.DashboardData{
		Countries: s.service.Countries(),
		YearMin:   lo,
		YearMax:   hi,
		Variables: variables,
		Selection: vm.Selection,
		Window:    vm.Window,
		Summary:   vm.Summary,
		MapURL:    "/api/choropleth?" + url.Values{"variable": {string(vm.Selection.Variable)}}.Encode(),
	}

	query := selectionQuery(vm.Selection)
	image := func(panel string) templates.ChartImage {
		return templates.ChartImage{
			Panel: panel,
			Alt:   panelAlt[panel],
			URL:   "/charts/" + panel + ".png?" + query,
		}
	}

	data.Flows = []templates.ChartImage{image(core.PanelInflow), image(core.PanelOutflow)}
	for _, ind := range core.PanelIndicators {
		data.Panels = append(data.Panels, image(string(ind)))
	}
	data.Trend = image(core.PanelFlows)
	return data
}

// selectionQuery encodes sel as chart URL parameters so each image is
// addressable on its own and cacheable.
func selectionQuery(sel core.Selection) string {
	return url.Values{
		"country":  {sel.Country},
		"year":     {strconv.Itoa(sel.Year)},
		"variable": {string(sel.Variable)},
	}.Encode()
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string `json:"status"`
	Countries     int    `json:"countries"`
	Years         []int  `json:"years"`
	FlowRows      int    `json:"flowRows"`
	IndicatorRows int    `json:"indicatorRows"`
	Sessions      int    `json:"sessions"`
}

// handleHealth reports the loaded snapshot's size.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Snapshot()
	writeJSON(w, HealthResponse{
		Status:        "ok",
		Countries:     len(snap.Countries()),
		Years:         s.service.Years(),
		FlowRows:      len(snap.Flows()),
		IndicatorRows: len(snap.Indicators()),
		Sessions:      s.sessions.count(),
	})
}

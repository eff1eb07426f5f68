package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/core"
	"github.com/JonMunkholm/migdash/internal/export"
	"github.com/JonMunkholm/migdash/internal/logging"
	"github.com/JonMunkholm/migdash/internal/web/templates"
)

// mapPanel addresses the choropleth through the chart routes.
const mapPanel = "map"

// OptionsResponse lists the selector choices.
type OptionsResponse struct {
	Countries []string                   `json:"countries"`
	YearMin   int                        `json:"yearMin"`
	YearMax   int                        `json:"yearMax"`
	Variables []templates.VariableOption `json:"variables"`
	Panels    []string                   `json:"panels"`
}

// handleOptions returns the countries, year bounds and map variables.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	lo, hi := s.service.YearBounds()
	resp := OptionsResponse{
		Countries: s.service.Countries(),
		YearMin:   lo,
		YearMax:   hi,
		Panels:    append([]string{mapPanel}, core.Panels...),
	}
	for _, v := range s.service.Variables() {
		resp.Variables = append(resp.Variables, templates.VariableOption{Value: string(v), Label: v.Label()})
	}
	writeJSON(w, resp)
}

// handleGetSelection returns the session's current selection.
func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	_, sel := s.currentSelection(w, r)
	writeJSON(w, sel)
}

// handleSetSelection updates any subset of country, year and variable. The
// stored selection is untouched when the update is invalid.
func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	id, sel := s.currentSelection(w, r)

	in, err := inputFromBody(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	next, err := in.apply(sel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.service.Validate(next); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.sessions.put(id, next)
	logging.WithSelection(r.Context(), next.Country, next.Year, string(next.Variable)).
		Debug("selection changed")
	writeJSON(w, next)
}

// handleView returns every view for the selection as one document.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sel, err := s.requestSelection(w, r, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	vm, err := s.service.View(r.Context(), sel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, vm)
}

// handleSummary returns the text boxes for the selection.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sel, err := s.requestSelection(w, r, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	summary, err := s.service.Summary(sel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

// handleChoropleth returns the animated world map. The variable comes from
// the query, else from the session.
func (s *Server) handleChoropleth(w http.ResponseWriter, r *http.Request) {
	sel, err := s.requestSelection(w, r, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	fig, err := s.service.Choropleth(sel.Variable)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, fig)
}

// handleChartJSON returns one chart as a Plotly document.
func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	fig, err := s.panelFigure(r, w, chi.URLParam(r, "panel"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, fig)
}

// panelFigure resolves a panel name, including the map, for the request's
// selection.
func (s *Server) panelFigure(r *http.Request, w http.ResponseWriter, panel string) (chart.Figure, error) {
	sel, err := s.requestSelection(w, r, false)
	if err != nil {
		return chart.Figure{}, err
	}
	if panel == mapPanel {
		return s.service.Choropleth(sel.Variable)
	}
	return s.service.Panel(r.Context(), sel, panel)
}

// handleExport downloads the country-year summary and yearly averages.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.Write(&buf, s.service.Snapshot()); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="migration_aggregates.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

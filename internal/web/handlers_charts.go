package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/logging"
)

// chartCacheSeconds is how long browsers may reuse a rendered panel.
const chartCacheSeconds = 300

// handleChartPNG draws one chart panel server-side.
func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	panel := chi.URLParam(r, "panel")

	fig, err := s.panelFigure(r, w, panel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	img, err := chart.RenderPNG(fig, s.cfg.Chart.Width, s.cfg.Chart.Height)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("chart rendered", "panel", panel, "bytes", len(img))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "private, max-age="+strconv.Itoa(chartCacheSeconds))
	w.Write(img)
}

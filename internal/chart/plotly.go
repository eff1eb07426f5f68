package chart

import (
	"encoding/json"
	"math"
	"strconv"
)

// Shared Plotly styling.
const (
	fontFamily = "sans-serif"
	fontColor  = "#111"
	gridColor  = "LightGrey"
	lineColor  = "rgb(89, 89, 89)"
	background = "#ffffff"
)

// MarshalJSON encodes the figure as a Plotly document: {data, layout, frames}.
func (f Figure) MarshalJSON() ([]byte, error) {
	doc := map[string]any{
		"layout": f.plotlyLayout(),
	}

	if f.Map != nil {
		data, frames := f.Map.plotlyTraces()
		doc["data"] = data
		doc["frames"] = frames
		return json.Marshal(doc)
	}

	data := make([]map[string]any, 0, len(f.Series))
	for _, s := range f.Series {
		data = append(data, s.plotlyTrace())
	}
	doc["data"] = data
	return json.Marshal(doc)
}

func (f Figure) plotlyLayout() map[string]any {
	layout := map[string]any{
		"title": map[string]any{
			"text": f.Title,
			"x":    0.5,
			"font": font(15),
		},
		"showlegend":    f.ShowLegend,
		"paper_bgcolor": background,
		"plot_bgcolor":  background,
	}

	if f.ShowLegend {
		layout["legend"] = map[string]any{
			"orientation": "h",
			"yanchor":     "top",
			"xanchor":     "center",
			"y":           -0.3,
			"x":           0.5,
			"font":        font(12),
		}
	}

	if f.Map != nil {
		layout["title"] = map[string]any{
			"text": "<b>" + f.Title + "</b>",
			"x":    0.5,
			"font": font(20),
		}
		layout["geo"] = map[string]any{
			"projection":     map[string]any{"type": f.Map.Projection},
			"showframe":      false,
			"showcoastlines": true,
		}
		layout["sliders"] = []any{f.Map.plotlySlider()}
		return layout
	}

	layout["xaxis"] = f.XAxis.plotly()
	layout["yaxis"] = f.YAxis.plotly()
	return layout
}

func (a Axis) plotly() map[string]any {
	out := map[string]any{
		"showline":  true,
		"linecolor": lineColor,
		"gridcolor": gridColor,
		"tickfont":  font(12),
	}
	if a.Title != "" {
		out["title"] = map[string]any{"text": a.Title, "font": font(13)}
	}
	if a.Range != nil {
		out["range"] = []float64{a.Range.From, a.Range.To}
	}
	if a.CategoryReversed {
		out["autorange"] = "reversed"
	}
	if a.LinearTicks {
		out["tickmode"] = "linear"
	}
	if a.TickAngle != 0 {
		out["tickangle"] = a.TickAngle
	}
	return out
}

func (s Series) plotlyTrace() map[string]any {
	trace := map[string]any{
		"name":       s.Name,
		"showlegend": s.ShowLegend,
	}

	switch s.Kind {
	case KindBar:
		trace["type"] = "bar"
		trace["orientation"] = string(s.Orientation)
		trace["marker"] = map[string]any{"color": s.Color}
		if s.Orientation == Horizontal {
			trace["x"] = nullable(s.X)
			trace["y"] = s.Labels
		} else {
			trace["x"] = nullable(s.X)
			trace["y"] = nullable(s.Y)
		}
	default:
		trace["type"] = "scatter"
		trace["mode"] = "lines"
		trace["x"] = nullable(s.X)
		trace["y"] = nullable(s.Y)
		width := s.LineWidth
		if width == 0 {
			width = 2
		}
		trace["line"] = map[string]any{"color": s.Color, "width": width}
	}
	return trace
}

func (m *ChoroplethMap) plotlyTraces() (data []any, frames []any) {
	frames = make([]any, 0, len(m.Frames))
	for _, fr := range m.Frames {
		frames = append(frames, map[string]any{
			"name": strconv.Itoa(fr.Year),
			"data": []any{m.plotlyFrameTrace(fr)},
		})
	}

	if len(m.Frames) > 0 {
		data = []any{m.plotlyFrameTrace(m.Frames[0])}
	} else {
		data = []any{}
	}
	return data, frames
}

func (m *ChoroplethMap) plotlyFrameTrace(fr MapFrame) map[string]any {
	custom := make([][]any, len(fr.Locations))
	for i := range fr.Locations {
		var raw any
		if i < len(fr.Hover) && !math.IsNaN(fr.Hover[i]) {
			raw = fr.Hover[i]
		}
		custom[i] = []any{fr.Year, raw}
	}

	return map[string]any{
		"type":         "choropleth",
		"locationmode": m.LocationMode,
		"locations":    fr.Locations,
		"z":            nullable(fr.Values),
		"zmin":         m.ValueMin,
		"zmax":         m.ValueMax,
		"colorscale":   plotlyColorScale(m.ColorScale),
		"hovertext":    fr.Locations,
		"customdata":   custom,
		"hovertemplate": "<b>%{hovertext}</b><br>Year=%{customdata[0]}<br>" +
			m.HoverLabel + "=%{customdata[1]}<extra></extra>",
		"colorbar": map[string]any{
			"title": map[string]any{"text": m.ColorBarTitle},
		},
	}
}

func (m *ChoroplethMap) plotlySlider() map[string]any {
	steps := make([]any, 0, len(m.Frames))
	for _, fr := range m.Frames {
		name := strconv.Itoa(fr.Year)
		steps = append(steps, map[string]any{
			"label":  name,
			"method": "animate",
			"args": []any{
				[]string{name},
				map[string]any{
					"mode":       "immediate",
					"frame":      map[string]any{"duration": 300, "redraw": true},
					"transition": map[string]any{"duration": 0},
				},
			},
		})
	}
	return map[string]any{
		"active":       0,
		"currentvalue": map[string]any{"prefix": "Year="},
		"steps":        steps,
	}
}

// plotlyColorScale encodes stops as [[at, color], ...].
func plotlyColorScale(stops []ColorStop) [][2]any {
	out := make([][2]any, len(stops))
	for i, s := range stops {
		out[i] = [2]any{s.At, s.Color}
	}
	return out
}

func font(size int) map[string]any {
	return map[string]any{"size": size, "family": fontFamily, "color": fontColor}
}

// nullable converts NaN to JSON null.
func nullable(vs []float64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = v
	}
	return out
}

package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrUnsupported is returned for figures that cannot be drawn as images.
var ErrUnsupported = errors.New("unsupported chart for image rendering")

// RenderPNG draws a bar/line figure to PNG at the given pixel size.
func RenderPNG(fig Figure, widthPx, heightPx int) ([]byte, error) {
	if fig.Map != nil {
		return nil, fmt.Errorf("%w: choropleth map", ErrUnsupported)
	}
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", widthPx, heightPx)
	}

	p, err := buildPlot(fig)
	if err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(pixels(widthPx), pixels(heightPx), "png")
	if err != nil {
		return nil, fmt.Errorf("create png writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// pixels converts a pixel count to a vg length at the 96 DPI used by the png canvas.
func pixels(px int) vg.Length {
	return vg.Points(float64(px) * 72 / 96)
}

func buildPlot(fig Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = plainText(fig.Title)
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Text = plainText(fig.XAxis.Title)
	p.Y.Label.Text = plainText(fig.YAxis.Title)
	p.Add(plotter.NewGrid())

	hasVerticalBars := false
	for _, s := range fig.Series {
		var err error
		switch {
		case s.Kind == KindBar && s.Orientation == Horizontal:
			err = addHorizontalBars(p, s, fig.YAxis.CategoryReversed)
		case s.Kind == KindBar:
			hasVerticalBars = hasVerticalBars || s.Len() > 0
			err = addVerticalBars(p, s)
		default:
			err = addLine(p, s)
		}
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
	}

	if hasVerticalBars && fig.XAxis.Range == nil {
		p.X.Min -= 0.5
		p.X.Max += 0.5
	}
	applyRange(&p.X, fig.XAxis.Range)
	applyRange(&p.Y, fig.YAxis.Range)

	// An axis with no data and no range still needs finite bounds.
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		if a.Min > a.Max {
			a.Min, a.Max = 0, 1
		}
	}

	if fig.XAxis.LinearTicks {
		p.X.Tick.Marker = unitTicks{}
	}
	if fig.XAxis.TickAngle != 0 {
		p.X.Tick.Label.Rotation = float64(fig.XAxis.TickAngle) * math.Pi / 180
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	p.Legend.Top = true
	return p, nil
}

func addHorizontalBars(p *plot.Plot, s Series, topFirst bool) error {
	n := len(s.X)
	if n == 0 {
		return nil
	}

	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		// gonum draws category 0 at the bottom
		src := i
		if topFirst {
			src = n - 1 - i
		}
		values[i] = finiteOrZero(s.X[src])
		if src < len(s.Labels) {
			labels[i] = s.Labels[src]
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(8))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = parseColor(s.Color)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalY(labels...)
	return nil
}

// addVerticalBars adds one bar per point, centred on its X value.
func addVerticalBars(p *plot.Plot, s Series) error {
	col := parseColor(s.Color)
	for i := 0; i < len(s.X) && i < len(s.Y); i++ {
		if math.IsNaN(s.Y[i]) {
			continue
		}
		bar, err := plotter.NewBarChart(plotter.Values{s.Y[i]}, vg.Points(10))
		if err != nil {
			return err
		}
		bar.XMin = s.X[i]
		bar.Color = col
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
	}
	return nil
}

func addLine(p *plot.Plot, s Series) error {
	pts := make(plotter.XYs, 0, len(s.X))
	for i := 0; i < len(s.X) && i < len(s.Y); i++ {
		if math.IsNaN(s.X[i]) || math.IsNaN(s.Y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	if len(pts) == 0 {
		return nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = parseColor(s.Color)
	width := s.LineWidth
	if width == 0 {
		width = 2
	}
	line.Width = vg.Points(width)

	p.Add(line)
	if s.ShowLegend {
		p.Legend.Add(s.Name, line)
	}
	return nil
}

func applyRange(a *plot.Axis, r *Range) {
	if r == nil {
		return
	}
	a.Min, a.Max = r.Bounds()
	if r.Reversed() {
		a.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
}

// unitTicks places a labelled tick on every whole number.
type unitTicks struct{}

func (unitTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for v := math.Ceil(min); v <= max; v++ {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

// plainText strips the HTML line breaks used in Plotly titles.
func plainText(s string) string {
	s = strings.ReplaceAll(s, "<br> ", "\n")
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "<b>", "")
	return strings.ReplaceAll(s, "</b>", "")
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseColor understands "rgb(r,g,b)" and "#rrggbb". Anything else is black.
func parseColor(s string) color.Color {
	s = strings.TrimSpace(s)
	black := color.RGBA{A: 255}

	switch {
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) < 3 {
			return black
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return black
			}
			rgb[i] = uint8(v)
		}
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}

	case strings.HasPrefix(s, "#") && len(s) == 7:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return black
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	}
	return black
}

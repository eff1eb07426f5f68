// Package chart defines typed chart specifications and renders them.
//
// A [Figure] is the contract between the view functions and the presentation
// layer. It can be encoded as a Plotly document (see [Figure.MarshalJSON]) or
// drawn to PNG with gonum/plot (see [RenderPNG]).
package chart

// Kind is the drawing primitive of a series.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

// Orientation of a bar series.
type Orientation string

const (
	Vertical   Orientation = "v"
	Horizontal Orientation = "h"
)

// Series is one data series. X and Y are parallel.
//
// Horizontal bars carry their values in X and the category names in Labels;
// vertical bars and lines carry numeric X positions and values in Y.
type Series struct {
	Kind        Kind
	Name        string
	Orientation Orientation
	X           []float64
	Y           []float64
	Labels      []string
	Color       string // "rgb(r,g,b)" or "#rrggbb"
	LineWidth   float64
	ShowLegend  bool
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	if s.Kind == KindBar && s.Orientation == Horizontal {
		return len(s.X)
	}
	return len(s.Y)
}

// Range is an axis range. From > To draws the axis reversed.
type Range struct {
	From float64
	To   float64
}

// Reversed reports whether the axis runs from high to low.
func (r Range) Reversed() bool { return r.From > r.To }

// Bounds returns the range as (min, max).
func (r Range) Bounds() (float64, float64) {
	if r.Reversed() {
		return r.To, r.From
	}
	return r.From, r.To
}

// Axis configures one axis. A nil Range means autorange.
type Axis struct {
	Title            string
	Range            *Range
	CategoryReversed bool // first category drawn at the top
	LinearTicks      bool // one tick per unit step
	TickAngle        int
}

// Figure is a complete chart specification.
type Figure struct {
	Title      string
	Series     []Series
	XAxis      Axis
	YAxis      Axis
	ShowLegend bool
	Map        *ChoroplethMap
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	if f.Map != nil {
		return len(f.Map.Frames) == 0
	}
	for _, s := range f.Series {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}

// ChoroplethMap is a per-year animated world map.
type ChoroplethMap struct {
	LocationMode  string // "country names"
	Projection    string // "natural earth"
	ColorScale    []ColorStop
	ColorBarTitle string
	ValueMin      float64
	ValueMax      float64
	HoverLabel    string // name of the raw value shown on hover
	Frames        []MapFrame
}

// MapFrame is the map state for a single year.
type MapFrame struct {
	Year      int
	Locations []string
	Values    []float64 // normalised colour values
	Hover     []float64 // raw values shown on hover
}

// ColorStop is one point of a continuous colour scale. At runs from 0 to 1.
type ColorStop struct {
	At    float64
	Color string
}

// YlGn is the ColorBrewer 9-class yellow-green sequential scale.
var YlGn = evenStops(
	"#ffffe5", "#f7fcb9", "#d9f0a3", "#addd8e", "#78c679",
	"#41ab5d", "#238443", "#006837", "#004529",
)

func evenStops(colors ...string) []ColorStop {
	stops := make([]ColorStop, len(colors))
	last := float64(len(colors) - 1)
	for i, c := range colors {
		stops[i] = ColorStop{At: float64(i) / last, Color: c}
	}
	return stops
}

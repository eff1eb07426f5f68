package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/color"
	"math"
	"testing"
)

func outflowFigure() Figure {
	return Figure{
		Title: "Migration outflow - Top-10 countries<br>Afghanistan, 2017",
		Series: []Series{{
			Kind:        KindBar,
			Orientation: Horizontal,
			X:           []float64{300, 200, 100},
			Labels:      []string{"Iran", "Pakistan", "India"},
			Color:       "rgb(203,24,29)",
		}},
		XAxis: Axis{Title: "Number of migrants", Range: &Range{From: 800, To: 0}},
		YAxis: Axis{CategoryReversed: true},
	}
}

func TestFigureMarshalJSON_HorizontalBars(t *testing.T) {
	raw, err := json.Marshal(outflowFigure())
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var doc struct {
		Data []struct {
			Type        string    `json:"type"`
			Orientation string    `json:"orientation"`
			X           []float64 `json:"x"`
			Y           []string  `json:"y"`
		} `json:"data"`
		Layout struct {
			XAxis struct {
				Range []float64 `json:"range"`
			} `json:"xaxis"`
			YAxis struct {
				Autorange string `json:"autorange"`
			} `json:"yaxis"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if len(doc.Data) != 1 {
		t.Fatalf("traces = %d, want 1", len(doc.Data))
	}
	tr := doc.Data[0]
	if tr.Type != "bar" || tr.Orientation != "h" {
		t.Errorf("trace type/orientation = %s/%s, want bar/h", tr.Type, tr.Orientation)
	}
	if len(tr.Y) != 3 || tr.Y[0] != "Iran" {
		t.Errorf("y = %v, want origin names", tr.Y)
	}
	if got := doc.Layout.XAxis.Range; len(got) != 2 || got[0] != 800 || got[1] != 0 {
		t.Errorf("xaxis range = %v, want [800 0]", got)
	}
	if doc.Layout.YAxis.Autorange != "reversed" {
		t.Errorf("yaxis autorange = %q, want reversed", doc.Layout.YAxis.Autorange)
	}
}

func TestFigureMarshalJSON_NaNBecomesNull(t *testing.T) {
	fig := Figure{Series: []Series{{
		Kind: KindLine,
		X:    []float64{2014, 2015},
		Y:    []float64{math.NaN(), 3},
	}}}

	raw, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if !bytes.Contains(raw, []byte(`"y":[null,3]`)) {
		t.Errorf("expected null for NaN, got %s", raw)
	}
}

func TestFigureMarshalJSON_ChoroplethFrames(t *testing.T) {
	fig := Figure{
		Title: "Global Net-Migration",
		Map: &ChoroplethMap{
			LocationMode: "country names",
			ColorScale:   YlGn,
			ValueMax:     1,
			HoverLabel:   "Net-Migration",
			Frames: []MapFrame{
				{Year: 2008, Locations: []string{"Chile"}, Values: []float64{0.5}, Hover: []float64{10}},
				{Year: 2009, Locations: []string{"Chile"}, Values: []float64{1}, Hover: []float64{20}},
			},
		},
	}

	raw, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var doc struct {
		Data   []map[string]any `json:"data"`
		Frames []struct {
			Name string `json:"name"`
		} `json:"frames"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if len(doc.Frames) != 2 || doc.Frames[0].Name != "2008" || doc.Frames[1].Name != "2009" {
		t.Errorf("frames = %+v, want 2008, 2009", doc.Frames)
	}
	if len(doc.Data) != 1 || doc.Data[0]["type"] != "choropleth" {
		t.Errorf("data = %v, want one choropleth trace", doc.Data)
	}
	for _, want := range []string{`"colorscale":[[0,"#ffffe5"],[0.125,"#f7fcb9"]`, `[1,"#004529"]]`} {
		if !bytes.Contains(raw, []byte(want)) {
			t.Errorf("colour scale missing %s in %s", want, raw)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	t.Run("horizontal bars with reversed axis", func(t *testing.T) {
		img, err := RenderPNG(outflowFigure(), 320, 240)
		if err != nil {
			t.Fatalf("RenderPNG error = %v", err)
		}
		if !bytes.HasPrefix(img, pngMagic) {
			t.Error("output is not a PNG")
		}
	})

	t.Run("bars and line with gaps", func(t *testing.T) {
		fig := Figure{
			Title: "GDP per capita",
			Series: []Series{
				{Kind: KindBar, Orientation: Vertical, X: []float64{2014, 2015}, Y: []float64{100, math.NaN()}, Color: "rgb(239,225,156)"},
				{Kind: KindLine, Name: "Global annual average", X: []float64{2014, 2015}, Y: []float64{80, 90}, Color: "#000000", ShowLegend: true},
			},
			XAxis:      Axis{LinearTicks: true, TickAngle: -90},
			YAxis:      Axis{Range: &Range{From: 0, To: 130000}},
			ShowLegend: true,
		}
		img, err := RenderPNG(fig, 320, 240)
		if err != nil {
			t.Fatalf("RenderPNG error = %v", err)
		}
		if !bytes.HasPrefix(img, pngMagic) {
			t.Error("output is not a PNG")
		}
	})

	t.Run("empty figure", func(t *testing.T) {
		if _, err := RenderPNG(Figure{Title: "nothing"}, 100, 100); err != nil {
			t.Fatalf("RenderPNG error = %v", err)
		}
	})

	t.Run("map is unsupported", func(t *testing.T) {
		_, err := RenderPNG(Figure{Map: &ChoroplethMap{}}, 100, 100)
		if !errors.Is(err, ErrUnsupported) {
			t.Fatalf("expected ErrUnsupported, got %v", err)
		}
	})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"rgb(35,132,67)", color.RGBA{R: 35, G: 132, B: 67, A: 255}},
		{"rgb(203, 24, 29)", color.RGBA{R: 203, G: 24, B: 29, A: 255}},
		{"#237924", color.RGBA{R: 0x23, G: 0x79, B: 0x24, A: 255}},
		{"teal", color.RGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	r := Range{From: 900, To: 0}
	if !r.Reversed() {
		t.Error("Range{900,0} should be reversed")
	}
	if lo, hi := r.Bounds(); lo != 0 || hi != 900 {
		t.Errorf("Bounds() = %v,%v want 0,900", lo, hi)
	}
}

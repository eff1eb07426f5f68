package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/migdash/internal/core"
)

func sampleData() DashboardData {
	return DashboardData{
		Countries: []string{"Afghanistan", "Côte d'Ivoire", "Germany"},
		YearMin:   2008,
		YearMax:   2017,
		Variables: []VariableOption{
			{Value: "normNet", Label: "Net-Migration"},
			{Value: "normInflow", Label: "Migration Inflow"},
		},
		Selection: core.Selection{Country: "Germany", Year: 2015, Variable: core.NormInflow},
		Window:    core.Window{Start: 2012, End: 2015},
		Summary: core.Summary{
			Heading:   "Germany, 2015",
			Inflow:    "13000",
			Outflow:   "2600",
			Direction: "entering",
			Sentence:  "In 2015, the migration flows in Germany were mainly from people entering the country.",
		},
		Flows: []ChartImage{
			{Panel: "inflow", Alt: "Top inflow", URL: "/charts/inflow.png?country=Germany&year=2015"},
		},
		Trend:  ChartImage{Panel: "flows", Alt: "Trend", URL: "/charts/flows.png"},
		MapURL: "/api/choropleth?variable=normInflow",
	}
}

func render(t *testing.T, d DashboardData, full bool) string {
	t.Helper()
	var buf bytes.Buffer
	c := Views(d)
	if full {
		c = Dashboard(d)
	}
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestDashboard(t *testing.T) {
	out := render(t, sampleData(), true)

	checks := []string{
		"<!DOCTYPE html>",
		`<option value="Germany" selected>Germany</option>`,
		`value="normInflow" checked`,
		`min="2008"`,
		`max="2017"`,
		`value="2015"`,
		`id="views"`,
		`src="/static/dashboard.js"`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if strings.Contains(out, "Côte d'Ivoire\"") || !strings.Contains(out, "Côte d&#39;Ivoire") {
		t.Error("country names should be escaped")
	}
}

func TestViews(t *testing.T) {
	out := render(t, sampleData(), false)

	if strings.HasPrefix(out, "<!DOCTYPE") {
		t.Error("fragment should not contain the page shell")
	}
	for _, want := range []string{
		`data-map-src="/api/choropleth?variable=normInflow"`,
		`<span class="value">13000</span>`,
		`class="sentence entering"`,
		"people entering the country.",
		"Germany, 2012-2015",
		`src="/charts/inflow.png?country=Germany&amp;year=2015"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("views missing %q", want)
		}
	}
}

func TestErrorAlert(t *testing.T) {
	var buf bytes.Buffer
	if err := ErrorAlert("Unknown <country>", "Pick one", "SEL001").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Unknown &lt;country&gt;") || !strings.Contains(out, "<code>SEL001</code>") {
		t.Errorf("unexpected alert %q", out)
	}
}

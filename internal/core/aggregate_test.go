package core

import (
	"math"
	"testing"

	"github.com/JonMunkholm/migdash/internal/dataset"
)

func TestBuildCountryYearSummary(t *testing.T) {
	rows := BuildCountryYearSummary(testTables().Flows)

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	// First-seen order of (country, year).
	wantOrder := []countryYear{{"Afghanistan", 2017}, {"Germany", 2017}, {"Germany", 2016}, {"Afghanistan", 2016}}
	for i, want := range wantOrder {
		if rows[i].Country != want.country || rows[i].Year != want.year {
			t.Errorf("row %d = %s/%d, want %s/%d", i, rows[i].Country, rows[i].Year, want.country, want.year)
		}
	}

	de := rows[1]
	if de.Inflow != 13000 || de.Outflow != 2600 || de.NetMigration != 10400 {
		t.Errorf("Germany 2017 totals = %v/%v/%v", de.Inflow, de.Outflow, de.NetMigration)
	}
}

func TestNormalizedColumnsInUnitRange(t *testing.T) {
	rows := BuildCountryYearSummary(testTables().Flows)

	cols := []struct {
		name string
		raw  func(CountryYearSummary) float64
		norm func(CountryYearSummary) float64
	}{
		{"inflow", func(s CountryYearSummary) float64 { return s.Inflow }, func(s CountryYearSummary) float64 { return s.NormInflow }},
		{"outflow", func(s CountryYearSummary) float64 { return s.Outflow }, func(s CountryYearSummary) float64 { return s.NormOutflow }},
		{"net", func(s CountryYearSummary) float64 { return s.NetMigration }, func(s CountryYearSummary) float64 { return s.NormNet }},
	}

	for _, c := range cols {
		t.Run(c.name, func(t *testing.T) {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, r := range rows {
				lo = math.Min(lo, c.raw(r))
				hi = math.Max(hi, c.raw(r))
			}
			for _, r := range rows {
				n := c.norm(r)
				if n < 0 || n > 1 {
					t.Errorf("%s/%d norm = %v out of [0,1]", r.Country, r.Year, n)
				}
				if c.raw(r) == lo && n != 0 {
					t.Errorf("minimum maps to %v, want 0", n)
				}
				if c.raw(r) == hi && n != 1 {
					t.Errorf("maximum maps to %v, want 1", n)
				}
			}
		})
	}
}

func TestNormalizeConstantColumn(t *testing.T) {
	flows := []dataset.FlowRecord{
		flow("A", 2010, "X", 7, 3),
		flow("B", 2010, "X", 7, 3),
		flow("C", 2011, "X", 7, 3),
	}
	for _, r := range BuildCountryYearSummary(flows) {
		if r.NormInflow != 0 || r.NormOutflow != 0 || r.NormNet != 0 {
			t.Errorf("%s/%d norms = %v/%v/%v, want all 0", r.Country, r.Year, r.NormInflow, r.NormOutflow, r.NormNet)
		}
	}
}

func TestBuildCountryYearSummaryEmpty(t *testing.T) {
	if rows := BuildCountryYearSummary(nil); rows != nil {
		t.Errorf("got %v, want nil", rows)
	}
}

func TestBuildYearlyAverages(t *testing.T) {
	avgs := BuildYearlyAverages(testTables().Indicators)

	if len(avgs) != 10 {
		t.Fatalf("got %d years, want 10", len(avgs))
	}
	for i := 1; i < len(avgs); i++ {
		if avgs[i-1].Year >= avgs[i].Year {
			t.Fatalf("years not ascending: %d then %d", avgs[i-1].Year, avgs[i].Year)
		}
	}

	a2012 := avgs[4]
	if a2012.Year != 2012 {
		t.Fatalf("avgs[4].Year = %d, want 2012", a2012.Year)
	}

	tests := []struct {
		ind  Indicator
		want float64
	}{
		{GDPPerCapita, (512 + 40012) / 2.0},
		{PoliticalStability, (-2.4 + 0.8) / 2},
		{HealthSpending, 2525},
		// Germany's deaths are missing, so only Afghanistan counts.
		{ConflictDeaths, 42},
		{IndicatorInflow, (1200 + 120000) / 2.0},
	}
	for _, tt := range tests {
		t.Run(string(tt.ind), func(t *testing.T) {
			if got := a2012.Value(tt.ind); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Value(%s) = %v, want %v", tt.ind, got, tt.want)
			}
		})
	}
}

func TestBuildYearlyAveragesAllMissing(t *testing.T) {
	nan := math.NaN()
	avgs := BuildYearlyAverages([]dataset.IndicatorRecord{
		indicator("A", 2010, 1, 1, 1, nan, 1, 1),
		indicator("B", 2010, 3, 1, 1, nan, 1, 1),
	})
	if len(avgs) != 1 {
		t.Fatalf("got %d rows, want 1", len(avgs))
	}
	if _, ok := avgs[0].Values[ConflictDeaths]; ok {
		t.Error("all-missing column should be absent")
	}
	if !math.IsNaN(avgs[0].Value(ConflictDeaths)) {
		t.Error("Value of absent column should be NaN")
	}
	if got := avgs[0].Value(GDPPerCapita); got != 2 {
		t.Errorf("gdp mean = %v, want 2", got)
	}
}

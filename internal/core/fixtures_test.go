package core

import (
	"math"

	"github.com/JonMunkholm/migdash/internal/dataset"
)

func flow(country string, year int, origin string, in, out float64) dataset.FlowRecord {
	return dataset.FlowRecord{
		Country:      country,
		Year:         year,
		Origin:       origin,
		Inflow:       in,
		Outflow:      out,
		NetMigration: in - out,
	}
}

func indicator(country string, year int, gdp, stab, health, deaths, in, out float64) dataset.IndicatorRecord {
	return dataset.IndicatorRecord{
		Country:            country,
		Year:               year,
		GDPPerCapita:       gdp,
		PoliticalStability: stab,
		HealthSpending:     health,
		ConflictDeaths:     deaths,
		Inflow:             in,
		Outflow:            out,
	}
}

// testTables is a small dataset covering 2008-2017 for two countries.
func testTables() *dataset.Tables {
	nan := math.NaN()
	t := &dataset.Tables{
		Flows: []dataset.FlowRecord{
			flow("Afghanistan", 2017, "Pakistan", 500, 1000000),
			flow("Germany", 2017, "Syria", 9000, 100),
			flow("Germany", 2017, "Poland", 4000, 2500),
			flow("Germany", 2016, "Syria", 12000, 0),
			flow("Afghanistan", 2016, "Iran", 300, 40000),
		},
	}
	for y := 2008; y <= 2017; y++ {
		fy := float64(y - 2000)
		t.Indicators = append(t.Indicators,
			indicator("Afghanistan", y, 500+fy, -2.4, 50, 30+fy, 100*fy, 1000*fy),
			indicator("Germany", y, 40000+fy, 0.8, 5000, nan, 10000*fy, 500*fy),
		)
	}
	return t
}

func testSnapshot() *Snapshot {
	return NewSnapshot(testTables())
}

package core

import (
	"math"
	"sort"

	"github.com/JonMunkholm/migdash/internal/dataset"
)

type countryYear struct {
	country string
	year    int
}

// BuildCountryYearSummary sums flows per (country, year) and adds the three
// min-max normalised columns. Rows come out in first-seen order of their
// (country, year) pair.
func BuildCountryYearSummary(flows []dataset.FlowRecord) []CountryYearSummary {
	if len(flows) == 0 {
		return nil
	}

	index := make(map[countryYear]int)
	var out []CountryYearSummary
	for _, f := range flows {
		key := countryYear{f.Country, f.Year}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, CountryYearSummary{Country: f.Country, Year: f.Year})
		}
		out[i].Inflow += f.Inflow
		out[i].Outflow += f.Outflow
		out[i].NetMigration += f.NetMigration
	}

	normalize(out,
		func(s *CountryYearSummary) float64 { return s.Inflow },
		func(s *CountryYearSummary, v float64) { s.NormInflow = v })
	normalize(out,
		func(s *CountryYearSummary) float64 { return s.Outflow },
		func(s *CountryYearSummary, v float64) { s.NormOutflow = v })
	normalize(out,
		func(s *CountryYearSummary) float64 { return s.NetMigration },
		func(s *CountryYearSummary, v float64) { s.NormNet = v })

	return out
}

// normalize min-max scales one column across all rows. A constant column
// scales to 0.
func normalize(rows []CountryYearSummary, get func(*CountryYearSummary) float64, set func(*CountryYearSummary, float64)) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range rows {
		v := get(&rows[i])
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	for i := range rows {
		if span == 0 {
			set(&rows[i], 0)
			continue
		}
		set(&rows[i], (get(&rows[i])-lo)/span)
	}
}

// BuildYearlyAverages averages every numeric indicator column per year,
// ignoring missing cells. Rows are sorted by year.
func BuildYearlyAverages(records []dataset.IndicatorRecord) []YearlyGlobalAverage {
	if len(records) == 0 {
		return nil
	}

	type acc struct {
		sum   float64
		count int
	}
	byYear := make(map[int]map[Indicator]*acc)
	for _, r := range records {
		cols, ok := byYear[r.Year]
		if !ok {
			cols = make(map[Indicator]*acc, len(AllIndicators))
			for _, ind := range AllIndicators {
				cols[ind] = &acc{}
			}
			byYear[r.Year] = cols
		}
		for _, ind := range AllIndicators {
			v := indicatorValue(r, ind)
			if dataset.IsMissing(v) {
				continue
			}
			cols[ind].sum += v
			cols[ind].count++
		}
	}

	out := make([]YearlyGlobalAverage, 0, len(byYear))
	for year, cols := range byYear {
		avg := YearlyGlobalAverage{Year: year, Values: make(map[Indicator]float64, len(cols))}
		for ind, a := range cols {
			if a.count == 0 {
				continue
			}
			avg.Values[ind] = a.sum / float64(a.count)
		}
		out = append(out, avg)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

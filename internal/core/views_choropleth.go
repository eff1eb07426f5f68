package core

import "github.com/JonMunkholm/migdash/internal/chart"

// Choropleth builds the animated world map of the summary table coloured by
// v, one frame per year in ascending order. The colour scale is fixed to
// [0, 1] because every normalised column lies in that range.
func Choropleth(snap *Snapshot, v MigrationVariable) chart.Figure {
	byYear := make(map[int][]CountryYearSummary, len(snap.mapYears))
	for _, row := range snap.summary {
		byYear[row.Year] = append(byYear[row.Year], row)
	}

	frames := make([]chart.MapFrame, 0, len(snap.mapYears))
	for _, year := range snap.mapYears {
		rows := byYear[year]
		f := chart.MapFrame{
			Year:      year,
			Locations: make([]string, len(rows)),
			Values:    make([]float64, len(rows)),
			Hover:     make([]float64, len(rows)),
		}
		for i, row := range rows {
			f.Locations[i] = row.Country
			f.Values[i] = row.Norm(v)
			f.Hover[i] = row.Raw(v)
		}
		frames = append(frames, f)
	}

	return chart.Figure{
		Title: v.Title(),
		Map: &chart.ChoroplethMap{
			LocationMode:  "country names",
			Projection:    "natural earth",
			ColorScale:    chart.YlGn,
			ColorBarTitle: "Number of migrants <br>(min-max normalization)",
			ValueMin:      0,
			ValueMax:      1,
			HoverLabel:    v.RawField(),
			Frames:        frames,
		},
	}
}

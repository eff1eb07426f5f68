// Package core turns the migration and indicator tables into the dashboard's
// views.
//
// It has no knowledge of HTTP or rendering. The web handlers and the CLI call
// it the same way, and the tests call the view functions directly.
//
// # Snapshot
//
// [NewSnapshot] derives the aggregate tables once at startup: the
// per-country-per-year flow totals with their min-max normalised columns
// ([BuildCountryYearSummary]) and the yearly global means of every indicator
// ([BuildYearlyAverages]). A Snapshot is never mutated afterwards.
//
// # Views
//
// Every view is a pure function of a [Selection] and the Snapshot:
//
//   - [SummaryView]: inflow/outflow totals and the direction sentence
//   - [Choropleth]: the animated world map, one frame per year
//   - [TopFlows]: the top-10 origin bar charts with a shared axis bound
//   - [IndicatorPanels]: four bar+line panels over the trailing window
//   - [FlowTrend]: inflow vs outflow lines over the trailing window
//
// [Render] runs all of them and returns a [ViewModel].
//
// # Error Handling
//
// Selection problems are reported with the sentinels [ErrUnknownCountry],
// [ErrYearOutOfRange], [ErrUnknownVariable] and [ErrUnknownPanel].
// [MapError] turns any error into a coded [UserMessage] for display.
package core

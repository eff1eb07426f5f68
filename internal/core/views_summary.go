package core

import (
	"fmt"
	"strconv"
)

// SummaryView builds the text boxes for a country-year. A country-year with
// no flow rows yields zero totals and the "leaving" sentence.
func SummaryView(snap *Snapshot, sel Selection) Summary {
	var inflow, outflow, net float64
	for _, f := range snap.flowsFor(sel.Country, sel.Year) {
		inflow += f.Inflow
		outflow += f.Outflow
		net += f.NetMigration
	}

	direction := "leaving"
	if net > 0 {
		direction = "entering"
	}

	return Summary{
		Heading:   sel.Country + ", " + strconv.Itoa(sel.Year),
		Inflow:    FormatCount(inflow),
		Outflow:   FormatCount(outflow),
		Direction: direction,
		Sentence: fmt.Sprintf("In %d, the migration flows in %s were mainly from people %s the country.",
			sel.Year, sel.Country, direction),
	}
}

// FormatCount prints a total without exponent or trailing zeros ("1000000", "12.5").
func FormatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package core

import "fmt"

// Trailing window policy for the trend panels.
const (
	windowSpan = 3
	clampStart = 2008
	clampEnd   = 2010
)

// ResolveWindow returns the trailing window [year-3, year]. For years up to
// 2010 the dataset has no earlier data, so the window is pinned to
// [2008, 2010].
func ResolveWindow(year int) Window {
	start := year - windowSpan
	if start < clampEnd && year <= clampEnd {
		return Window{Start: clampStart, End: clampEnd}
	}
	return Window{Start: start, End: year}
}

// DefaultSelection returns the initial selection: the configured country
// (or the first one available), the configured year and net migration.
func DefaultSelection(snap *Snapshot, opts Options) Selection {
	country := opts.DefaultCountry
	if !snap.HasCountry(country) && len(snap.Countries()) > 0 {
		country = snap.Countries()[0]
	}
	return Selection{
		Country:  country,
		Year:     opts.DefaultYear,
		Variable: NormNet,
	}
}

// ValidateSelection checks a selection against the snapshot and year bounds.
// The variable must be in its canonical spelling; see [ParseMigrationVariable].
func ValidateSelection(snap *Snapshot, opts Options, sel Selection) error {
	if !snap.HasCountry(sel.Country) {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, sel.Country)
	}
	if sel.Year < opts.YearMin || sel.Year > opts.YearMax {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, sel.Year, opts.YearMin, opts.YearMax)
	}
	v, err := ParseMigrationVariable(string(sel.Variable))
	if err != nil {
		return err
	}
	if v != sel.Variable {
		return fmt.Errorf("%w: %q is not canonical, use %q", ErrUnknownVariable, sel.Variable, v)
	}
	return nil
}

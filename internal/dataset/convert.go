package dataset

// convert.go turns raw spreadsheet cells into typed values.
//
// Spreadsheet exports are rarely clean:
//   - Thousands separators and stray spaces in numbers
//   - Accounting negatives written as "(123)"
//   - Excel formula prefixes (="value")
//   - Years stored as floats ("2017.0")

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Require returns the positions of the named columns, in order.
func (h HeaderIndex) Require(cols []string) ([]int, error) {
	pos := make([]int, len(cols))
	var missing []string
	for i, c := range cols {
		p, ok := h[strings.ToLower(c)]
		if !ok {
			missing = append(missing, c)
			continue
		}
		pos[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return pos, nil
}

// CleanCell removes common spreadsheet artifacts from a cell value.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// ParseNumber converts a cell to float64.
// ok is false for blank cells; err is set for non-blank cells that are not numbers.
func ParseNumber(s string) (v float64, ok bool, err error) {
	s = CleanCell(s)
	if s == "" {
		return 0, false, nil
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "") // non-breaking space

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, true, nil
}

// ParseYear converts a cell to an integer year. Blank cells are an error.
func ParseYear(s string) (int, error) {
	v, ok, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: blank year", ErrInvalidNumber)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: year %v is not a whole number", ErrInvalidNumber, v)
	}
	return int(v), nil
}

// parseFlowValue reads a flow cell; blanks sum as zero.
func parseFlowValue(s string) (float64, error) {
	v, _, err := ParseNumber(s)
	return v, err
}

// parseIndicatorValue reads an indicator cell; blanks become NaN.
func parseIndicatorValue(s string) (float64, error) {
	v, ok, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if !ok {
		return Missing(), nil
	}
	return v, nil
}

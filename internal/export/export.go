// Package export writes the derived aggregate tables to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/migdash/internal/core"
	"github.com/JonMunkholm/migdash/internal/dataset"
)

// Sheet names of the exported workbook.
const (
	SummarySheet  = "Country Year Summary"
	AveragesSheet = "Yearly Averages"
)

// SummaryHeader is the header row of the summary sheet.
var SummaryHeader = []string{
	dataset.ColCountry, dataset.ColYear,
	dataset.ColInflow, dataset.ColOutflow, dataset.ColNetMigration,
	"norm Inflow", "norm Outflow", "norm Net",
}

// Workbook builds the two-sheet workbook for snap. The caller closes it.
func Workbook(snap *core.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSummary(f, snap.Summary()); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(AveragesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := writeAverages(f, snap.Averages()); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write encodes the workbook for snap to w.
func Write(w io.Writer, snap *core.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook for snap to path.
func WriteFile(path string, snap *core.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, rows []core.CountryYearSummary) error {
	if err := setRow(f, SummarySheet, 1, anySlice(SummaryHeader)); err != nil {
		return err
	}
	for i, r := range rows {
		row := []any{r.Country, r.Year, r.Inflow, r.Outflow, r.NetMigration, r.NormInflow, r.NormOutflow, r.NormNet}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeAverages writes one column per indicator. Years without a value for
// an indicator leave the cell blank.
func writeAverages(f *excelize.File, rows []core.YearlyGlobalAverage) error {
	header := []any{dataset.ColYear}
	for _, ind := range core.AllIndicators {
		header = append(header, ind.Column())
	}
	if err := setRow(f, AveragesSheet, 1, header); err != nil {
		return err
	}

	for i, a := range rows {
		row := []any{a.Year}
		for _, ind := range core.AllIndicators {
			v := a.Value(ind)
			if math.IsNaN(v) {
				row = append(row, nil)
				continue
			}
			row = append(row, v)
		}
		if err := setRow(f, AveragesSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

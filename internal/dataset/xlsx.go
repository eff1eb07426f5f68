package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads the two tables from spreadsheet workbooks.
// An empty sheet name selects the first sheet of the workbook.
type XLSXSource struct {
	FlowsPath       string
	FlowsSheet      string
	IndicatorsPath  string
	IndicatorsSheet string
}

// Load opens both workbooks and parses every data row.
func (s XLSXSource) Load(ctx context.Context) (*Tables, error) {
	flowRows, err := readSheet(s.FlowsPath, s.FlowsSheet)
	if err != nil {
		return nil, err
	}
	flows, err := ParseFlowRows(flowRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.FlowsPath, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	indRows, err := readSheet(s.IndicatorsPath, s.IndicatorsSheet)
	if err != nil {
		return nil, err
	}
	indicators, err := ParseIndicatorRows(indRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.IndicatorsPath, err)
	}

	slog.Info("datasets loaded",
		"flows_file", s.FlowsPath,
		"flow_rows", len(flows),
		"indicators_file", s.IndicatorsPath,
		"indicator_rows", len(indicators),
	)

	return &Tables{Flows: flows, Indicators: indicators}, nil
}

// readSheet returns all rows of a sheet, header first.
func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptySheet)
		}
		sheet = sheets[0]
	}

	// Number formats only affect display; parse the stored value.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

// ParseFlowRows converts raw sheet rows (header first) into flow records.
func ParseFlowRows(rows [][]string) ([]FlowRecord, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	pos, err := MakeHeaderIndex(rows[0]).Require(FlowColumns)
	if err != nil {
		return nil, err
	}

	out := make([]FlowRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		line := i + 2
		rec := FlowRecord{
			Country: CleanCell(cell(row, pos[0])),
			Origin:  CleanCell(cell(row, pos[2])),
		}
		if rec.Year, err = ParseYear(cell(row, pos[1])); err != nil {
			return nil, rowError(line, ColYear, err)
		}
		if rec.Inflow, err = parseFlowValue(cell(row, pos[3])); err != nil {
			return nil, rowError(line, ColInflow, err)
		}
		if rec.Outflow, err = parseFlowValue(cell(row, pos[4])); err != nil {
			return nil, rowError(line, ColOutflow, err)
		}
		if rec.NetMigration, err = parseFlowValue(cell(row, pos[5])); err != nil {
			return nil, rowError(line, ColNetMigration, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseIndicatorRows converts raw sheet rows (header first) into indicator records.
func ParseIndicatorRows(rows [][]string) ([]IndicatorRecord, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	pos, err := MakeHeaderIndex(rows[0]).Require(IndicatorColumns)
	if err != nil {
		return nil, err
	}

	out := make([]IndicatorRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		line := i + 2
		rec := IndicatorRecord{Country: CleanCell(cell(row, pos[0]))}
		if rec.Year, err = ParseYear(cell(row, pos[1])); err != nil {
			return nil, rowError(line, ColYear, err)
		}

		targets := []*float64{
			&rec.GDPPerCapita, &rec.PoliticalStability, &rec.HealthSpending,
			&rec.ConflictDeaths, &rec.Inflow, &rec.Outflow,
		}
		for j, dst := range targets {
			col := IndicatorColumns[j+2]
			if *dst, err = parseIndicatorValue(cell(row, pos[j+2])); err != nil {
				return nil, rowError(line, col, err)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// cell returns row[i], or "" for short rows (excelize trims trailing blanks).
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowError(line int, col string, err error) error {
	return fmt.Errorf("row %d column %q: %w", line, col, err)
}

package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows into the first sheet of a new workbook.
func writeWorkbook(t *testing.T, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cellRef, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func flowHeader() []any {
	return []any{"Country", "Year", "Country of origin", "Inflow", "Outflow", "Net-Migration"}
}

func indicatorHeader() []any {
	return []any{
		"Country", "Year", "GDP per capita",
		"Political stability index (-2.5 weak; 2.5 strong)",
		"Health spending per capita", "Deaths - Conflict and terrorism",
		"Inflow", "Outflow",
	}
}

func TestXLSXSource_Load(t *testing.T) {
	flows := writeWorkbook(t, "flows.xlsx", [][]any{
		flowHeader(),
		{"Afghanistan", 2017, "Iran", 500, 1000000, -999500},
		{"Afghanistan", 2017, "Pakistan", 0, 20, -20},
		{"Portugal", 2016, "Spain", 30, 10, 20},
	})
	indicators := writeWorkbook(t, "indicators.xlsx", [][]any{
		indicatorHeader(),
		{"Afghanistan", 2017, 550.5, -2.8, 57, 60.2, 500, 1000000},
		{"Portugal", 2016, 19800, 1.1, "", 0.01, 30, 10},
	})

	src := XLSXSource{FlowsPath: flows, IndicatorsPath: indicators}
	tables, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(tables.Flows) != 3 {
		t.Fatalf("flows = %d, want 3", len(tables.Flows))
	}
	first := tables.Flows[0]
	if first.Country != "Afghanistan" || first.Year != 2017 || first.Origin != "Iran" {
		t.Errorf("unexpected first flow: %+v", first)
	}
	if first.Inflow != 500 || first.Outflow != 1000000 || first.NetMigration != -999500 {
		t.Errorf("unexpected flow values: %+v", first)
	}

	if len(tables.Indicators) != 2 {
		t.Fatalf("indicators = %d, want 2", len(tables.Indicators))
	}
	pt := tables.Indicators[1]
	if pt.GDPPerCapita != 19800 || pt.PoliticalStability != 1.1 {
		t.Errorf("unexpected indicator values: %+v", pt)
	}
	if !IsMissing(pt.HealthSpending) {
		t.Errorf("blank health spending should be missing, got %v", pt.HealthSpending)
	}
}

func TestXLSXSource_FormattedNumbers(t *testing.T) {
	flows := writeWorkbook(t, "flows.xlsx", [][]any{
		flowHeader(),
		{"Chile", 2015, "Peru", 1500.75, 20, 1480.75},
	})

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range [][]any{
		indicatorHeader(),
		{"Chile", 2015, 13574.17, -1.37, 1102.4, 0.5, 1500.75, 20},
	} {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", cellRef, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	// "0" displays every value as an integer.
	style, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	if err := f.SetCellStyle("Sheet1", "C2", "H2", style); err != nil {
		t.Fatalf("SetCellStyle: %v", err)
	}
	indicators := filepath.Join(t.TempDir(), "indicators.xlsx")
	if err := f.SaveAs(indicators); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	tables, err := XLSXSource{FlowsPath: flows, IndicatorsPath: indicators}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := tables.Indicators[0]
	if got.PoliticalStability != -1.37 {
		t.Errorf("PoliticalStability = %v, want -1.37", got.PoliticalStability)
	}
	if got.GDPPerCapita != 13574.17 || got.Inflow != 1500.75 {
		t.Errorf("unexpected indicator values: %+v", got)
	}
	if tables.Flows[0].Inflow != 1500.75 {
		t.Errorf("flow inflow = %v, want 1500.75", tables.Flows[0].Inflow)
	}
}

func TestXLSXSource_MissingFile(t *testing.T) {
	src := XLSXSource{
		FlowsPath:      filepath.Join(t.TempDir(), "nope.xlsx"),
		IndicatorsPath: filepath.Join(t.TempDir(), "nope2.xlsx"),
	}
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestParseFlowRows_MissingColumn(t *testing.T) {
	rows := [][]string{
		{"Country", "Year", "Country of origin", "Inflow", "Outflow"},
		{"A", "2010", "B", "1", "2"},
	}
	_, err := ParseFlowRows(rows)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestParseFlowRows_InvalidNumber(t *testing.T) {
	rows := [][]string{
		{"Country", "Year", "Country of origin", "Inflow", "Outflow", "Net-Migration"},
		{"A", "2010", "B", "lots", "2", "-2"},
	}
	_, err := ParseFlowRows(rows)
	if !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}
}

func TestParseFlowRows_BlankCellsAndRows(t *testing.T) {
	rows := [][]string{
		{"country", "YEAR", "Country of Origin", "Inflow", "Outflow", "Net-Migration"},
		{"A", "2010.0", "B", "", "2", "-2"},
		{},
		{"A", "2011", "C", "1,200"},
	}
	got, err := ParseFlowRows(rows)
	if err != nil {
		t.Fatalf("ParseFlowRows() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].Year != 2010 || got[0].Inflow != 0 {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	if got[1].Inflow != 1200 || got[1].Outflow != 0 || got[1].NetMigration != 0 {
		t.Errorf("unexpected short row: %+v", got[1])
	}
}

func TestParseIndicatorRows_Empty(t *testing.T) {
	if _, err := ParseIndicatorRows(nil); !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("expected ErrEmptySheet, got %v", err)
	}
}

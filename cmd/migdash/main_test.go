package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/migdash/internal/core"
	"github.com/JonMunkholm/migdash/internal/dataset"
)

func testService() *core.Service {
	tables := &dataset.Tables{
		Flows: []dataset.FlowRecord{
			{Country: "Germany", Year: 2017, Origin: "Syria", Inflow: 9000, Outflow: 100, NetMigration: 8900},
			{Country: "Germany", Year: 2017, Origin: "Poland", Inflow: 4000, Outflow: 2500, NetMigration: 1500},
			{Country: "Germany", Year: 2017, Origin: "France", Inflow: 0, Outflow: 0, NetMigration: 0},
		},
		Indicators: []dataset.IndicatorRecord{
			{Country: "Germany", Year: 2017, GDPPerCapita: 44000},
		},
	}
	return core.NewService(core.NewSnapshot(tables), core.DefaultOptions())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	sel := core.Selection{Country: "Germany", Year: 2017, Variable: core.NormNet}
	if err := printSummary(&buf, testService(), sel); err != nil {
		t.Fatalf("printSummary: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Germany, 2017",
		"Inflow:  13000",
		"Outflow: 2600",
		"people entering the country.",
		"Top inflow origins",
		"Top outflow destinations",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Syria leads the inflow list; zero flows are not listed.
	inflow := out[strings.Index(out, "Top inflow origins"):strings.Index(out, "Top outflow destinations")]
	if strings.Index(inflow, "Syria") > strings.Index(inflow, "Poland") {
		t.Errorf("inflow list out of order:\n%s", inflow)
	}
	if strings.Contains(out, "France") {
		t.Errorf("zero flow listed:\n%s", out)
	}
}

func TestPrintSummary_InvalidSelection(t *testing.T) {
	var buf bytes.Buffer
	sel := core.Selection{Country: "Atlantis", Year: 2017, Variable: core.NormNet}
	if err := printSummary(&buf, testService(), sel); err == nil {
		t.Fatal("expected error for unknown country")
	}
}

func TestSummarySelection(t *testing.T) {
	svc := testService()

	sel, err := summarySelection(svc, "Germany", 2017)
	if err != nil {
		t.Fatalf("summarySelection: %v", err)
	}
	if sel.Country != "Germany" || sel.Year != 2017 || sel.Variable != core.NormNet {
		t.Errorf("selection = %+v", sel)
	}

	_, err = summarySelection(svc, "Atlantis", 0)
	var ue *core.UserError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *core.UserError", err)
	}
	if ue.User.Code != "SEL001" {
		t.Errorf("code = %q, want SEL001", ue.User.Code)
	}
	if !errors.Is(err, core.ErrUnknownCountry) {
		t.Error("user error should unwrap to ErrUnknownCountry")
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "export", "summary"} {
		if !names[want] {
			t.Errorf("missing %q subcommand", want)
		}
	}
	if root.RunE == nil {
		t.Error("root command should serve by default")
	}
}

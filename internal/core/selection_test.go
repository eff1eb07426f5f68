package core

import (
	"errors"
	"testing"
)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		year int
		want Window
	}{
		{2008, Window{2008, 2010}},
		{2009, Window{2008, 2010}},
		{2010, Window{2008, 2010}},
		{2011, Window{2008, 2011}},
		{2012, Window{2009, 2012}},
		{2015, Window{2012, 2015}},
		{2017, Window{2014, 2017}},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			if got := ResolveWindow(tt.year); got != tt.want {
				t.Errorf("ResolveWindow(%d) = %+v, want %+v", tt.year, got, tt.want)
			}
		})
	}
}

func TestDefaultSelection(t *testing.T) {
	snap := testSnapshot()

	got := DefaultSelection(snap, DefaultOptions())
	want := Selection{Country: "Afghanistan", Year: 2017, Variable: NormNet}
	if got != want {
		t.Errorf("DefaultSelection() = %+v, want %+v", got, want)
	}

	opts := DefaultOptions()
	opts.DefaultCountry = "Narnia"
	if got := DefaultSelection(snap, opts); got.Country != "Afghanistan" {
		t.Errorf("fallback country = %q, want first listed country", got.Country)
	}
}

func TestValidateSelection(t *testing.T) {
	snap := testSnapshot()
	opts := DefaultOptions()

	tests := []struct {
		name    string
		sel     Selection
		wantErr error
	}{
		{"valid", Selection{"Germany", 2012, NormInflow}, nil},
		{"unknown country", Selection{"Narnia", 2012, NormNet}, ErrUnknownCountry},
		{"year below range", Selection{"Germany", 2007, NormNet}, ErrYearOutOfRange},
		{"year above range", Selection{"Germany", 2018, NormNet}, ErrYearOutOfRange},
		{"bad variable", Selection{"Germany", 2012, "normFoo"}, ErrUnknownVariable},
		{"non-canonical variable", Selection{"Germany", 2012, "norm Inflow"}, ErrUnknownVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelection(snap, opts, tt.sel)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseMigrationVariable(t *testing.T) {
	tests := []struct {
		in      string
		want    MigrationVariable
		wantErr bool
	}{
		{"normNet", NormNet, false},
		{"norm Inflow", NormInflow, false},
		{"NORMOUTFLOW", NormOutflow, false},
		{"net", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMigrationVariable(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

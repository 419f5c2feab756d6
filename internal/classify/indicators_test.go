package classify

import (
	"math"
	"testing"

	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
)

func testTables(t *testing.T) *reference.Tables {
	t.Helper()
	ageRows := []reference.AgeRow{
		{Months: 12, SeverelyCutoff: 6.8, ModerateTo: 7.6, Upper: 12.1},
		{Months: 30, SeverelyCutoff: 9.3, ModerateTo: 10.4, Upper: 17.0},
	}
	heightRows := []reference.HeightRow{
		{Height: 70.0, SeverelyCutoff: 6.7, WastedTo: 7.2, OverweightFrom: 10.1, OverweightTo: 10.9, ObeseFrom: 11.0},
		{Height: 71.0, SeverelyCutoff: 6.9, WastedTo: 7.4, OverweightFrom: 10.4, OverweightTo: 11.2, ObeseFrom: 11.3},
	}
	tables, err := reference.New(reference.Set{
		WFA:  reference.AgeRows{Male: ageRows, Female: ageRows},
		LHFA: reference.AgeRows{Male: ageRows, Female: ageRows},
		WFH:  reference.HeightRows{Male: heightRows, Female: heightRows},
	})
	if err != nil {
		t.Fatalf("build tables: %v", err)
	}
	return tables
}

func TestWeightForAge(t *testing.T) {
	table := testTables(t).WFA(model.Male)
	cases := []struct {
		name   string
		weight *float64
		months float64
		want   model.WFATag
	}{
		{"severe boundary inclusive", model.Float(6.8), 12, model.WFASeverelyUnderweight},
		{"below severe", model.Float(5.0), 12, model.WFASeverelyUnderweight},
		{"moderate boundary inclusive", model.Float(7.6), 12, model.WFAUnderweight},
		{"normal", model.Float(9.5), 12, model.WFANormal},
		{"overweight boundary inclusive", model.Float(12.1), 12, model.WFAOverweight},
		{"fractional month floors", model.Float(6.8), 12.9, model.WFASeverelyUnderweight},
		{"missing weight", nil, 12, model.WFAUnclassified},
		{"zero weight", model.Float(0), 12, model.WFAUnclassified},
		{"NaN weight", model.Float(math.NaN()), 12, model.WFAUnclassified},
		{"infinite weight", model.Float(math.Inf(1)), 12, model.WFAUnclassified},
		{"no row", model.Float(9.5), 13, model.WFAUnclassified},
		{"over 71 months", model.Float(9.5), 72, model.WFAUnclassified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeightForAge(tc.weight, tc.months, table); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHeightForAge(t *testing.T) {
	table := testTables(t).LHFA(model.Female)
	cases := []struct {
		name   string
		height *float64
		months float64
		want   model.LHFATag
	}{
		{"severe boundary inclusive", model.Float(9.3), 30, model.LHFASeverelyStunted},
		{"stunted", model.Float(10.0), 30, model.LHFAStunted},
		{"stunted boundary inclusive", model.Float(10.4), 30, model.LHFAStunted},
		{"normal", model.Float(10.5), 30, model.LHFANormal},
		{"tall", model.Float(17.0), 30, model.LHFATall},
		{"missing height", nil, 30, model.LHFAUnclassified},
		{"NaN height", model.Float(math.NaN()), 30, model.LHFAUnclassified},
		{"over 71 months", model.Float(10.5), 71.5, model.LHFAUnclassified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HeightForAge(tc.height, tc.months, table); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAgeIndexedOverMaxForAllMonths(t *testing.T) {
	tables := reference.Default()
	for months := 72.0; months <= 120; months++ {
		if got := WeightForAge(model.Float(15), months, tables.WFA(model.Male)); got != model.WFAUnclassified {
			t.Fatalf("expected unclassified wfa at %v months, got %q", months, got)
		}
		if got := HeightForAge(model.Float(100), months, tables.LHFA(model.Female)); got != model.LHFAUnclassified {
			t.Fatalf("expected unclassified lhfa at %v months, got %q", months, got)
		}
	}
}

func TestWeightForHeight(t *testing.T) {
	table := testTables(t).WFH(model.Male)
	cases := []struct {
		name   string
		weight *float64
		height *float64
		want   model.WFHTag
	}{
		{"severe boundary inclusive", model.Float(6.7), model.Float(70), model.WFHSeverelyWasted},
		{"wasted", model.Float(7.2), model.Float(70), model.WFHWasted},
		{"normal", model.Float(8.5), model.Float(70), model.WFHNormal},
		{"overweight lower bound", model.Float(10.1), model.Float(70), model.WFHOverweight},
		{"overweight upper bound", model.Float(10.9), model.Float(70), model.WFHOverweight},
		{"gap between overweight and obese", model.Float(10.95), model.Float(70), model.WFHNormal},
		{"obese", model.Float(11.0), model.Float(70), model.WFHObese},
		{"rounds to exact row", model.Float(7.4), model.Float(70.8), model.WFHWasted},
		{"nearest fallback", model.Float(7.2), model.Float(70.3), model.WFHWasted},
		{"below window", model.Float(7.0), model.Float(64.9), model.WFHUnclassified},
		{"above window", model.Float(20.0), model.Float(120.1), model.WFHUnclassified},
		{"missing weight", nil, model.Float(70), model.WFHUnclassified},
		{"missing height", model.Float(7.0), nil, model.WFHUnclassified},
		{"NaN height", model.Float(9.5), model.Float(math.NaN()), model.WFHUnclassified},
		{"NaN weight", model.Float(math.NaN()), model.Float(70), model.WFHUnclassified},
		{"infinite height", model.Float(9.5), model.Float(math.Inf(1)), model.WFHUnclassified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeightForHeight(tc.weight, tc.height, table); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWeightForHeightWindowEdgesAreInclusive(t *testing.T) {
	tables := reference.Default()
	if got := WeightForHeight(model.Float(7.5), model.Float(65), tables.WFH(model.Male)); got == model.WFHUnclassified {
		t.Fatalf("expected 65 cm to be classifiable")
	}
	if got := WeightForHeight(model.Float(22), model.Float(120), tables.WFH(model.Female)); got == model.WFHUnclassified {
		t.Fatalf("expected 120 cm to be classifiable")
	}
}

func TestWeightForHeightEmptyTable(t *testing.T) {
	if got := WeightForHeight(model.Float(8), model.Float(70), &reference.HeightTable{}); got != model.WFHUnclassified {
		t.Fatalf("expected unclassified for empty table, got %q", got)
	}
}

func TestMUACStatus(t *testing.T) {
	cases := []struct {
		muac   *float64
		months float64
		want   model.MUACTag
	}{
		{model.Float(11.4), 30, model.MUACSevere},
		{model.Float(11.5), 30, model.MUACModerate},
		{model.Float(12.4), 30, model.MUACModerate},
		{model.Float(12.5), 30, model.MUACNormal},
		{model.Float(11.0), 6, model.MUACSevere},
		{model.Float(11.0), 59, model.MUACSevere},
		{model.Float(11.0), 5, model.MUACUnclassified},
		{model.Float(13.0), 60, model.MUACUnclassified},
		{nil, 30, model.MUACUnclassified},
		{model.Float(math.NaN()), 30, model.MUACUnclassified},
		{model.Float(math.Inf(-1)), 30, model.MUACUnclassified},
	}
	for _, tc := range cases {
		if got := MUACStatus(tc.muac, tc.months); got != tc.want {
			t.Fatalf("muac %v at %v months: expected %q, got %q", tc.muac, tc.months, tc.want, got)
		}
	}
}

func TestRoundHalf(t *testing.T) {
	cases := map[float64]float64{70.2: 70.0, 70.25: 70.5, 70.74: 70.5, 70.75: 71.0, 65: 65}
	for in, want := range cases {
		if got := RoundHalf(in); got != want {
			t.Fatalf("RoundHalf(%v): expected %v, got %v", in, want, got)
		}
	}
}

func TestAgeRowUsesCompletedMonth(t *testing.T) {
	table := testTables(t).WFA(model.Male)
	row, ok := AgeRow(table, 12.9)
	if !ok || row.Months != 12 {
		t.Fatalf("expected month 12 row, got %+v (%v)", row, ok)
	}
	if _, ok := AgeRow(table, 13); ok {
		t.Fatalf("expected no row for a month missing from the table")
	}
	if _, ok := AgeRow(table, 71.5); ok {
		t.Fatalf("expected no row past the last month")
	}
}

func TestHeightRowPrefersExactKey(t *testing.T) {
	table := testTables(t).WFH(model.Male)
	row, ok := HeightRow(table, 70.2)
	if !ok || row.Height != 70.0 {
		t.Fatalf("expected 70.0 row, got %+v (%v)", row, ok)
	}
	// 70.4 rounds to 70.5, which has no row, so the nearest key wins.
	row, ok = HeightRow(table, 70.4)
	if !ok || row.Height != 70.0 {
		t.Fatalf("expected nearest 70.0 row, got %+v (%v)", row, ok)
	}
	row, ok = HeightRow(table, 70.8)
	if !ok || row.Height != 71.0 {
		t.Fatalf("expected 71.0 row, got %+v (%v)", row, ok)
	}
}

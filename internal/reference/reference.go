// Package reference holds the WHO growth-standard cutoff tables.
package reference

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/verte-zerg/nutristat/internal/model"
)

// MaxMonths is the last month covered by the age-indexed tables.
const MaxMonths = 71

// ErrUnknownIndicator is returned when a table name is not wfa, lhfa or wfh.
var ErrUnknownIndicator = errors.New("unknown indicator")

var errNoRows = errors.New("no rows")

// AgeRow is one month of an age-indexed table.
// For WFA ModerateTo is the underweight upper bound and Upper the overweight
// lower bound; for LHFA they are the stunted upper bound and the tall lower bound.
type AgeRow struct {
	Months         int     `toml:"months" yaml:"months"`
	SeverelyCutoff float64 `toml:"severely" yaml:"severely"`
	ModerateTo     float64 `toml:"moderate_to" yaml:"moderate_to"`
	Upper          float64 `toml:"upper" yaml:"upper"`
}

// HeightRow is one height of the weight-for-height table.
type HeightRow struct {
	Height         float64 `toml:"height" yaml:"height"`
	SeverelyCutoff float64 `toml:"severely" yaml:"severely"`
	WastedTo       float64 `toml:"wasted_to" yaml:"wasted_to"`
	OverweightFrom float64 `toml:"overweight_from" yaml:"overweight_from"`
	OverweightTo   float64 `toml:"overweight_to" yaml:"overweight_to"`
	ObeseFrom      float64 `toml:"obese_from" yaml:"obese_from"`
}

// AgeRows partitions age-indexed rows by gender.
type AgeRows struct {
	Male   []AgeRow `toml:"male" yaml:"male"`
	Female []AgeRow `toml:"female" yaml:"female"`
}

// HeightRows partitions height-indexed rows by gender.
type HeightRows struct {
	Male   []HeightRow `toml:"male" yaml:"male"`
	Female []HeightRow `toml:"female" yaml:"female"`
}

// Set is the raw, file-shaped form of a complete reference dataset.
type Set struct {
	WFA  AgeRows    `toml:"wfa" yaml:"wfa"`
	LHFA AgeRows    `toml:"lhfa" yaml:"lhfa"`
	WFH  HeightRows `toml:"wfh" yaml:"wfh"`
}

// AgeTable is an immutable month-indexed table.
type AgeTable struct {
	rows map[int]AgeRow
}

// Row returns the row for a whole month.
func (t *AgeTable) Row(months int) (AgeRow, bool) {
	if t == nil {
		return AgeRow{}, false
	}
	row, ok := t.rows[months]
	return row, ok
}

// Rows returns all rows in ascending month order.
func (t *AgeTable) Rows() []AgeRow {
	if t == nil {
		return nil
	}
	out := make([]AgeRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Months < out[j].Months })
	return out
}

// Len returns the number of rows.
func (t *AgeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// HeightTable is an immutable height-indexed table. Keys are kept in
// ascending order, which is the scan order for nearest lookups.
type HeightTable struct {
	keys []float64
	rows map[float64]HeightRow
}

// Row returns the row stored at exactly height.
func (t *HeightTable) Row(height float64) (HeightRow, bool) {
	if t == nil {
		return HeightRow{}, false
	}
	row, ok := t.rows[height]
	return row, ok
}

// Nearest returns the row whose key is closest to height. On equal distance
// the first key in ascending order wins. It reports false for an empty table.
func (t *HeightTable) Nearest(height float64) (HeightRow, bool) {
	if t == nil || len(t.keys) == 0 {
		return HeightRow{}, false
	}
	best := t.keys[0]
	for _, key := range t.keys[1:] {
		if math.Abs(key-height) < math.Abs(best-height) {
			best = key
		}
	}
	return t.rows[best], true
}

// Rows returns all rows in ascending height order.
func (t *HeightTable) Rows() []HeightRow {
	if t == nil {
		return nil
	}
	out := make([]HeightRow, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.rows[key])
	}
	return out
}

// Len returns the number of rows.
func (t *HeightTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Tables is the reference table store. It is never mutated after New returns
// and is safe for concurrent readers.
type Tables struct {
	wfa  map[model.Gender]*AgeTable
	lhfa map[model.Gender]*AgeTable
	wfh  map[model.Gender]*HeightTable
}

// New validates a Set and builds the store. Every indicator needs rows for
// both genders.
func New(set Set) (*Tables, error) {
	t := &Tables{
		wfa:  map[model.Gender]*AgeTable{},
		lhfa: map[model.Gender]*AgeTable{},
		wfh:  map[model.Gender]*HeightTable{},
	}
	for _, part := range []struct {
		name   string
		gender model.Gender
		rows   []AgeRow
		into   map[model.Gender]*AgeTable
	}{
		{"wfa", model.Male, set.WFA.Male, t.wfa},
		{"wfa", model.Female, set.WFA.Female, t.wfa},
		{"lhfa", model.Male, set.LHFA.Male, t.lhfa},
		{"lhfa", model.Female, set.LHFA.Female, t.lhfa},
	} {
		table, err := newAgeTable(part.rows)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %s table: %w", part.name, part.gender, err)
		}
		part.into[part.gender] = table
	}
	for _, part := range []struct {
		gender model.Gender
		rows   []HeightRow
	}{
		{model.Male, set.WFH.Male},
		{model.Female, set.WFH.Female},
	} {
		table, err := newHeightTable(part.rows)
		if err != nil {
			return nil, fmt.Errorf("invalid wfh %s table: %w", part.gender, err)
		}
		t.wfh[part.gender] = table
	}
	return t, nil
}

func newAgeTable(rows []AgeRow) (*AgeTable, error) {
	if len(rows) == 0 {
		return nil, errNoRows
	}
	table := &AgeTable{rows: make(map[int]AgeRow, len(rows))}
	for _, row := range rows {
		if row.Months < 0 || row.Months > MaxMonths {
			return nil, fmt.Errorf("month %d outside 0-%d", row.Months, MaxMonths)
		}
		if _, ok := table.rows[row.Months]; ok {
			return nil, fmt.Errorf("duplicate month %d", row.Months)
		}
		if !(row.SeverelyCutoff <= row.ModerateTo && row.ModerateTo < row.Upper) {
			return nil, fmt.Errorf("month %d: thresholds out of order", row.Months)
		}
		table.rows[row.Months] = row
	}
	return table, nil
}

func newHeightTable(rows []HeightRow) (*HeightTable, error) {
	if len(rows) == 0 {
		return nil, errNoRows
	}
	table := &HeightTable{
		keys: make([]float64, 0, len(rows)),
		rows: make(map[float64]HeightRow, len(rows)),
	}
	for _, row := range rows {
		if row.Height <= 0 || math.IsNaN(row.Height) || math.IsInf(row.Height, 0) {
			return nil, fmt.Errorf("invalid height %v", row.Height)
		}
		if _, ok := table.rows[row.Height]; ok {
			return nil, fmt.Errorf("duplicate height %v", row.Height)
		}
		if !(row.SeverelyCutoff <= row.WastedTo &&
			row.WastedTo < row.OverweightFrom &&
			row.OverweightFrom <= row.OverweightTo &&
			row.OverweightTo < row.ObeseFrom) {
			return nil, fmt.Errorf("height %v: thresholds out of order", row.Height)
		}
		table.rows[row.Height] = row
		table.keys = append(table.keys, row.Height)
	}
	sort.Float64s(table.keys)
	return table, nil
}

// WFA returns the weight-for-age table for a gender.
func (t *Tables) WFA(g model.Gender) *AgeTable {
	return t.wfa[g.Normalize()]
}

// LHFA returns the length/height-for-age table for a gender.
func (t *Tables) LHFA(g model.Gender) *AgeTable {
	return t.lhfa[g.Normalize()]
}

// WFH returns the weight-for-height table for a gender.
func (t *Tables) WFH(g model.Gender) *HeightTable {
	return t.wfh[g.Normalize()]
}

// Indicator names accepted by AgeIndexed.
const (
	IndicatorWFA  = "wfa"
	IndicatorLHFA = "lhfa"
	IndicatorWFH  = "wfh"
)

// AgeIndexed returns the named age-indexed table.
func (t *Tables) AgeIndexed(indicator string, g model.Gender) (*AgeTable, error) {
	switch indicator {
	case IndicatorWFA:
		return t.WFA(g), nil
	case IndicatorLHFA:
		return t.LHFA(g), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndicator, indicator)
	}
}

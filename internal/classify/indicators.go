// Package classify classifies child measurements against WHO growth standards.
package classify

import (
	"math"

	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
)

// AgeRow returns the row for the completed month of ageMonths. Ages past
// MaxMonths have no row.
func AgeRow(table *reference.AgeTable, ageMonths float64) (reference.AgeRow, bool) {
	if ageMonths > reference.MaxMonths {
		return reference.AgeRow{}, false
	}
	return table.Row(int(math.Floor(ageMonths)))
}

// WeightForAge classifies weight against the month row for ageMonths.
func WeightForAge(weight *float64, ageMonths float64, table *reference.AgeTable) model.WFATag {
	w, ok := model.Measure(weight)
	if !ok {
		return model.WFAUnclassified
	}
	row, ok := AgeRow(table, ageMonths)
	if !ok {
		return model.WFAUnclassified
	}
	switch {
	case w <= row.SeverelyCutoff:
		return model.WFASeverelyUnderweight
	case w <= row.ModerateTo:
		return model.WFAUnderweight
	case w >= row.Upper:
		return model.WFAOverweight
	default:
		return model.WFANormal
	}
}

// HeightForAge classifies length or height against the month row for ageMonths.
func HeightForAge(height *float64, ageMonths float64, table *reference.AgeTable) model.LHFATag {
	h, ok := model.Measure(height)
	if !ok {
		return model.LHFAUnclassified
	}
	row, ok := AgeRow(table, ageMonths)
	if !ok {
		return model.LHFAUnclassified
	}
	switch {
	case h <= row.SeverelyCutoff:
		return model.LHFASeverelyStunted
	case h <= row.ModerateTo:
		return model.LHFAStunted
	case h >= row.Upper:
		return model.LHFATall
	default:
		return model.LHFANormal
	}
}

// WeightForHeight classifies weight against the row HeightRow selects.
func WeightForHeight(weight, height *float64, table *reference.HeightTable) model.WFHTag {
	w, ok := model.Measure(weight)
	if !ok {
		return model.WFHUnclassified
	}
	h, ok := model.Measure(height)
	if !ok || h < WFHMinHeight || h > WFHMaxHeight {
		return model.WFHUnclassified
	}
	row, ok := HeightRow(table, h)
	if !ok {
		return model.WFHUnclassified
	}
	switch {
	case w <= row.SeverelyCutoff:
		return model.WFHSeverelyWasted
	case w <= row.WastedTo:
		return model.WFHWasted
	case w >= row.OverweightFrom && w <= row.OverweightTo:
		return model.WFHOverweight
	case w >= row.ObeseFrom:
		return model.WFHObese
	default:
		return model.WFHNormal
	}
}

// HeightRow returns the row used for height: the exact half-centimetre key
// when present, otherwise the nearest key.
func HeightRow(table *reference.HeightTable, height float64) (reference.HeightRow, bool) {
	if row, ok := table.Row(RoundHalf(height)); ok {
		return row, true
	}
	return table.Nearest(height)
}

// MUACStatus screens mid-upper arm circumference for acute malnutrition.
func MUACStatus(muac *float64, ageMonths float64) model.MUACTag {
	m, ok := model.Measure(muac)
	if !ok || ageMonths < MUACMinMonths || ageMonths > MUACMaxMonths {
		return model.MUACUnclassified
	}
	switch {
	case m < MUACSevereBelow:
		return model.MUACSevere
	case m < MUACModerateBelow:
		return model.MUACModerate
	default:
		return model.MUACNormal
	}
}

// RoundHalf rounds to the nearest 0.5.
func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

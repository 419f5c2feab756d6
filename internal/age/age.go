// Package age parses free-text age descriptions.
package age

import (
	"math"
	"regexp"
	"strconv"

	"github.com/verte-zerg/nutristat/internal/model"
)

// DaysPerMonth is the average month length used for TotalDays.
const DaysPerMonth = 30.44

var (
	yearsPattern  = unitPattern("year")
	monthsPattern = unitPattern("month")
	weeksPattern  = unitPattern("week")
	daysPattern   = unitPattern("day")
)

func unitPattern(unit string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + unit)
}

// Parse converts text such as "2 years 3 months" into an AgeSpec.
// Each unit is read independently and missing units count as zero, so
// unparseable input yields the zero AgeSpec.
func Parse(text string) model.AgeSpec {
	years := firstNumber(yearsPattern, text)
	months := firstNumber(monthsPattern, text) + years*12
	weeks := firstNumber(weeksPattern, text)
	days := firstNumber(daysPattern, text)
	return model.AgeSpec{
		Days:      days,
		Weeks:     weeks,
		Months:    months,
		TotalDays: int(math.Round(days + weeks*7 + months*DaysPerMonth)),
	}
}

func firstNumber(pattern *regexp.Regexp, text string) float64 {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return value
}

// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownGender is returned by ParseGender for unrecognised values.
var ErrUnknownGender = errors.New("unknown gender")

// Gender selects the gender partition of the reference tables.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// ParseGender accepts common spellings of male and female. Empty input yields Male.
func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "male", "m", "boy":
		return Male, nil
	case "female", "f", "girl":
		return Female, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGender, value)
	}
}

// Normalize maps any value other than Female to Male.
func (g Gender) Normalize() Gender {
	if g == Female {
		return Female
	}
	return Male
}

// AgeSpec is the structured form of a free-text age.
type AgeSpec struct {
	Days      float64
	Weeks     float64
	Months    float64
	TotalDays int
}

// Input holds the measurements of one child.
type Input struct {
	Weight *float64
	Height *float64
	MUAC   *float64
	Age    string
	Gender Gender
}

// Equal reports whether two inputs carry the same values.
func (in Input) Equal(other Input) bool {
	return sameMeasure(in.Weight, other.Weight) &&
		sameMeasure(in.Height, other.Height) &&
		sameMeasure(in.MUAC, other.MUAC) &&
		in.Age == other.Age &&
		in.Gender.Normalize() == other.Gender.Normalize()
}

func sameMeasure(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Measure returns the value of an optional measurement and whether it counts as present.
// Zero, negative and non-finite readings are treated as missing.
func Measure(v *float64) (float64, bool) {
	if v == nil || !Finite(*v) || *v <= 0 {
		return 0, false
	}
	return *v, true
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseMeasure parses a measurement typed by a user. Blank input is a missing
// measurement; NaN and infinities are rejected.
func ParseMeasure(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", raw)
	}
	if !Finite(v) {
		return nil, fmt.Errorf("%q is not a finite number", raw)
	}
	return &v, nil
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// NutritionalStatus is one classification snapshot.
type NutritionalStatus struct {
	WFA        WFATag   `json:"wfa"`
	LHFA       LHFATag  `json:"lhfa"`
	WFH        WFHTag   `json:"wfh"`
	MUAC       *float64 `json:"muac"`
	MUACStatus MUACTag  `json:"muac_status"`
}

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/nutristat/internal/reference"
)

// RenderAgeTable prints age-indexed rows with column names for the indicator.
func RenderAgeTable(w io.Writer, indicator string, rows []reference.AgeRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No rows found.")
		return err
	}
	headers := []string{"Months", "Severe <=", "Moderate <=", "High >="}
	switch indicator {
	case reference.IndicatorWFA:
		headers = []string{"Months", "Severely UW <=", "Underweight <=", "Overweight >="}
	case reference.IndicatorLHFA:
		headers = []string{"Months", "Severely ST <=", "Stunted <=", "Tall >="}
	}
	tbl := newTextTable(alignRight, headers...)
	for _, row := range rows {
		tbl.add(
			strconv.Itoa(row.Months),
			formatCutoff(row.SeverelyCutoff),
			formatCutoff(row.ModerateTo),
			formatCutoff(row.Upper),
		)
	}
	return tbl.write(w)
}

// RenderHeightTable prints weight-for-height rows.
func RenderHeightTable(w io.Writer, rows []reference.HeightRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No rows found.")
		return err
	}
	tbl := newTextTable(alignRight, "Height", "Severely W <=", "Wasted <=", "Overweight", "Obese >=")
	for _, row := range rows {
		tbl.add(
			formatCutoff(row.Height),
			formatCutoff(row.SeverelyCutoff),
			formatCutoff(row.WastedTo),
			formatCutoff(row.OverweightFrom)+"-"+formatCutoff(row.OverweightTo),
			formatCutoff(row.ObeseFrom),
		)
	}
	return tbl.write(w)
}

func formatCutoff(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

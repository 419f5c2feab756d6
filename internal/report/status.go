package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/nutristat/internal/model"
)

// Line is one indicator of a status in display form.
type Line struct {
	Indicator string
	Code      string
	Label     string
	Severity  model.Severity
}

// Lines flattens a status into display lines in a fixed indicator order.
func Lines(status model.NutritionalStatus) []Line {
	return []Line{
		{Indicator: "Weight-for-Age", Code: string(status.WFA), Label: status.WFA.Label(), Severity: status.WFA.Severity()},
		{Indicator: "Length/Height-for-Age", Code: string(status.LHFA), Label: status.LHFA.Label(), Severity: status.LHFA.Severity()},
		{Indicator: "Weight-for-Height", Code: string(status.WFH), Label: status.WFH.Label(), Severity: status.WFH.Severity()},
		{Indicator: "MUAC", Code: string(status.MUACStatus), Label: status.MUACStatus.Label(), Severity: status.MUACStatus.Severity()},
	}
}

// RenderStatus prints the classification as an aligned table.
func RenderStatus(w io.Writer, age model.AgeSpec, status model.NutritionalStatus) error {
	if _, err := fmt.Fprintf(w, "Age: %s months (%d days)\n", FormatNumber(age.Months), age.TotalDays); err != nil {
		return err
	}
	if status.MUAC != nil {
		if _, err := fmt.Fprintf(w, "MUAC: %s cm\n", FormatNumber(*status.MUAC)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tbl := newTextTable(alignLeft, "Indicator", "Code", "Status")
	for _, line := range Lines(status) {
		code := line.Code
		if code == "" {
			code = "-"
		}
		tbl.add(line.Indicator, code, line.Label)
	}
	return tbl.write(w)
}

// RenderJSON writes the status as indented JSON.
func RenderJSON(w io.Writer, status model.NutritionalStatus) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}

// FormatNumber prints a measurement without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/nutristat/internal/classify"
	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
)

// buildCutoffTable shows the reference row behind each anthropometric tag.
func buildCutoffTable() table.Model {
	columns := []table.Column{
		{Title: "Indicator", Width: 22},
		{Title: "Row", Width: 9},
		{Title: "Cutoffs", Width: 44},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(4),
	)
	t.SetStyles(cutoffTableStyles())
	t.Blur()
	return t
}

func cutoffTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	// Nothing is selectable, so selected rows render like any other.
	styles.Selected = styles.Cell
	return styles
}

func cutoffRows(tables *reference.Tables, gender model.Gender, ageMonths, height float64) []table.Row {
	if tables == nil {
		return nil
	}
	rows := make([]table.Row, 0, 3)
	if row, ok := classify.AgeRow(tables.WFA(gender), ageMonths); ok {
		rows = append(rows, table.Row{
			"Weight-for-Age",
			fmt.Sprintf("%d mo", row.Months),
			fmt.Sprintf("SUW <= %s  UW <= %s  OW >= %s", oneDecimal(row.SeverelyCutoff), oneDecimal(row.ModerateTo), oneDecimal(row.Upper)),
		})
	}
	if row, ok := classify.AgeRow(tables.LHFA(gender), ageMonths); ok {
		rows = append(rows, table.Row{
			"Length/Height-for-Age",
			fmt.Sprintf("%d mo", row.Months),
			fmt.Sprintf("SST <= %s  ST <= %s  T >= %s", oneDecimal(row.SeverelyCutoff), oneDecimal(row.ModerateTo), oneDecimal(row.Upper)),
		})
	}
	if height >= classify.WFHMinHeight && height <= classify.WFHMaxHeight {
		if row, ok := classify.HeightRow(tables.WFH(gender), height); ok {
			rows = append(rows, table.Row{
				"Weight-for-Height",
				oneDecimal(row.Height) + " cm",
				fmt.Sprintf("SW <= %s  W <= %s  OW %s-%s  OB >= %s",
					oneDecimal(row.SeverelyCutoff), oneDecimal(row.WastedTo), oneDecimal(row.OverweightFrom), oneDecimal(row.OverweightTo), oneDecimal(row.ObeseFrom)),
			})
		}
	}
	return rows
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Package report renders classification results and reference tables as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

// textTable lays out cells in columns sized by terminal display width, so
// wide runes keep the columns straight.
type textTable struct {
	titles []string
	align  []alignment
	rows   [][]string
}

func newTextTable(align alignment, titles ...string) *textTable {
	t := &textTable{titles: titles, align: make([]alignment, len(titles))}
	for i := range t.align {
		t.align[i] = align
	}
	return t
}

// add appends a row. Cells past the last column are dropped.
func (t *textTable) add(cells ...string) {
	if len(cells) > len(t.titles) {
		cells = cells[:len(t.titles)]
	}
	t.rows = append(t.rows, cells)
}

func (t *textTable) lines() []string {
	if len(t.titles) == 0 {
		return nil
	}
	widths := make([]int, len(t.titles))
	for i, title := range t.titles {
		widths[i] = runewidth.StringWidth(title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.render(t.titles, widths))
	for _, row := range t.rows {
		out = append(out, t.render(row, widths))
	}
	return out
}

func (t *textTable) render(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		gap := strings.Repeat(" ", max(0, width-runewidth.StringWidth(cell)))
		if t.align[i] == alignRight {
			parts[i] = gap + cell
		} else {
			parts[i] = cell + gap
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func (t *textTable) write(w io.Writer) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lines up plain or styled cells in columns separated by spaces.
// Widths are visible widths, so ANSI styling does not skew alignment.
type Table struct {
	// Indent is written before every row.
	Indent string
	// Gap is the number of spaces between columns.
	Gap int

	rows   [][]string
	widths []int
	right  []bool
}

func NewTable(cols int) *Table {
	return &Table{Gap: 2, widths: make([]int, cols), right: make([]bool, cols)}
}

// AlignRight right-aligns the given columns. Out-of-range indexes are ignored.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
	return t
}

// AddRow appends a row. Missing cells are blank and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.widths))
	copy(row, cells)
	for i, cell := range row {
		t.widths[i] = max(t.widths[i], lipgloss.Width(cell))
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int { return len(t.rows) }

// Lines renders each row without a trailing newline. The last column of a
// left-aligned row is not padded.
func (t *Table) Lines() []string {
	lines := make([]string, 0, len(t.rows))
	gap := strings.Repeat(" ", t.Gap)
	last := len(t.widths) - 1
	for _, row := range t.rows {
		var sb strings.Builder
		sb.WriteString(t.Indent)
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(gap)
			}
			fill := strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell))
			if t.right[i] {
				sb.WriteString(fill + cell)
			} else if i < last {
				sb.WriteString(cell + fill)
			} else {
				sb.WriteString(cell)
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}
	return strings.Join(t.Lines(), "\n") + "\n"
}

// Bullets renders one "<indent><bullet> entry" line per entry.
func Bullets(indent, bullet string, entries []string) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(indent + bullet + " " + e + "\n")
	}
	return sb.String()
}

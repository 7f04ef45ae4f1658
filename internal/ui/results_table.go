package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Column describes one column of a ResultsTable.
type Column struct {
	Title string
	// Flex shares the width left over by fixed columns; 0 means fixed at Min.
	Flex  float64
	Min   int
	Max   int // 0 for no limit
	Right bool
	Muted bool
}

var (
	colNum       = Column{Title: "#", Min: 4, Right: true, Muted: true}
	colItem      = Column{Title: "Item", Flex: 0.45, Min: 16, Max: 60}
	colMatch     = Column{Title: "Item", Flex: 0.40, Min: 16, Max: 50}
	colPlacement = Column{Title: "Where", Flex: 0.55, Min: 16, Max: 60, Muted: true}
	colWeight    = Column{Title: "Weight", Min: 12, Right: true}
	colValue     = Column{Title: "Value", Min: 10, Right: true}
)

var (
	// ItemsLayout: number, name, placement, weight, value.
	ItemsLayout = []Column{colNum, colItem, colPlacement, colWeight, colValue}
	// LocateLayout: number, name, placement.
	LocateLayout = []Column{colNum, colMatch, colPlacement}
)

const (
	cellGap    = 2
	tableInset = 2
)

// ResultsTable renders numbered listings fitted to the terminal width.
// The first column of every layout holds the row number.
type ResultsTable struct {
	display *DisplayContext
	columns []Column
	nums    []int
	cells   [][]string
}

func NewResultsTable(display *DisplayContext, columns []Column) *ResultsTable {
	return &ResultsTable{display: display, columns: columns}
}

// AddRow appends a row numbered num with cells for the remaining columns.
func (t *ResultsTable) AddRow(num int, cells ...string) {
	t.nums = append(t.nums, num)
	t.cells = append(t.cells, cells)
}

// widths gives fixed columns their minimum and splits the remaining terminal
// width between flexible columns by Flex, clamped to Min and Max.
func (t *ResultsTable) widths() []int {
	out := make([]int, len(t.columns))
	var flex float64
	free := t.display.TermWidth - tableInset - cellGap*(len(t.columns)-1)
	for i, c := range t.columns {
		if c.Flex == 0 {
			out[i] = c.Min
			free -= c.Min
			continue
		}
		flex += c.Flex
	}
	free = max(free, 0)

	for i, c := range t.columns {
		if c.Flex == 0 {
			continue
		}
		w := max(int(float64(free)*c.Flex/flex), c.Min)
		if c.Max > 0 {
			w = min(w, c.Max)
		}
		out[i] = w
	}
	return out
}

// Width reports the rendered width of the column titled title, or 0.
func (t *ResultsTable) Width(title string) int {
	for i, w := range t.widths() {
		if t.columns[i].Title == title {
			return w
		}
	}
	return 0
}

func (t *ResultsTable) Render() string {
	if len(t.nums) == 0 {
		return ""
	}
	widths := t.widths()
	last := len(t.columns) - 1

	numWidth := 0
	for _, n := range t.nums {
		numWidth = max(numWidth, len(strconv.Itoa(n)))
	}

	rows := make([][]string, len(t.nums))
	for r, num := range t.nums {
		row := make([]string, len(t.columns))
		row[0] = RowNum(num, numWidth)
		for c := 1; c <= last && c-1 < len(t.cells[r]); c++ {
			room := widths[c]
			if c < last {
				room -= cellGap
			}
			row[c] = TruncateWithEllipsis(t.cells[r][c-1], room)
		}
		rows[r] = row
	}

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Title
	}

	return table.New().
		Border(lipgloss.Border{Top: "─", Bottom: "─", Middle: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderRow(false).
		BorderStyle(Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if col < len(t.columns) {
				c := t.columns[col]
				switch {
				case row == table.HeaderRow:
					style = Bold
				case c.Muted:
					style = Muted
				}
				style = style.Width(widths[col])
				if c.Right {
					style = style.Align(lipgloss.Right)
				}
			}
			if col < last {
				style = style.PaddingRight(cellGap)
			}
			return style
		}).
		Render()
}

// TruncateWithEllipsis shortens s to at most n runes, ending in "..." and
// preferring to cut at a space in the second half.
func TruncateWithEllipsis(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	cut := string(runes[:n-3])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return cut + "..."
}

// RowNum right-aligns num in at least width (minimum two) columns.
func RowNum(num, width int) string {
	return fmt.Sprintf("%*d", max(width, 2), num)
}

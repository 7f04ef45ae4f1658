package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// fallbackWidth is used when stdout is not a terminal or its size is unknown.
const fallbackWidth = 100

// DisplayContext describes where rendered output is going.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext inspects stdout.
func NewDisplayContext() *DisplayContext {
	d := &DisplayContext{TermWidth: fallbackWidth}
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return d
	}
	d.IsTTY = true
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		d.TermWidth = w
	}
	return d
}

// NewDisplayContextWithWidth is a terminal of the given width.
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// MarkdownWidth is the word-wrap width inside the report margins, never
// below 20 columns.
func (d *DisplayContext) MarkdownWidth() int {
	return max(d.TermWidth-2*MarkdownRenderMargin, 20)
}

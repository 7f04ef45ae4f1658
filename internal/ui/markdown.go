package ui

import (
	"strings"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin of rendered reports and guides.
const MarkdownRenderMargin = 2

const defaultCodeTheme = "monokai"

var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme sets the syntax theme for fenced code blocks.
// Any chroma style name is accepted; unknown names keep the default.
func ConfigureMarkdownCodeTheme(theme string) {
	name := strings.ToLower(strings.TrimSpace(theme))
	if _, ok := chromastyles.Registry[name]; !ok {
		name = defaultCodeTheme
	}
	markdownCodeTheme = name
}

// CodeThemes lists the chroma style names accepted for code blocks.
func CodeThemes() []string {
	return chromastyles.Names()
}

// RenderMarkdown renders a report for the terminal, wrapped at width.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = fallbackWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(reportMarkdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// reportMarkdownStyle is glamour's dark style with hpt's margins, accent
// headings and plain underlined H1/H2 instead of colored banners.
func reportMarkdownStyle() ansi.StyleConfig {
	s := styles.DarkStyleConfig

	margin := uint(MarkdownRenderMargin)
	s.Document.Margin = &margin
	s.Document.Color = nil

	s.Heading.Color = nil
	if color, ok := AccentColor(); ok {
		s.Heading.Color = &color
	}

	underline := true
	s.H1 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# ", Underline: &underline}}
	s.H2 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## ", Underline: &underline}}

	bullet := "• "
	s.Item.BlockPrefix = bullet

	sep, row := "│", "─"
	s.Table.CenterSeparator = &sep
	s.Table.ColumnSeparator = &sep
	s.Table.RowSeparator = &row

	s.CodeBlock.Theme = markdownCodeTheme
	return s
}

package ui

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// The palette is deliberately small: names and headers use the accent,
// references and hints are muted, everything else is plain text. Status is
// carried by symbols, not color.

const (
	defaultAccent = "#A78BFA"
	mutedGray     = "#6C7086"
)

// namedAccents are the accepted [ui] accent names besides hex and ANSI codes.
var namedAccents = map[string]string{
	"purple": defaultAccent,
	"blue":   "#7AA2F7",
	"cyan":   "#7DCFFF",
	"green":  "#9ECE6A",
	"yellow": "#E0AF68",
	"orange": "#FF9E64",
	"red":    "#F7768E",
	"pink":   "#F5C2E7",
}

var (
	Accent     = accentStyle(defaultAccent)
	AccentBold = Accent.Bold(true)
	Muted      = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedGray))
	Bold       = lipgloss.NewStyle().Bold(true)

	// accentColor is the configured accent; empty means the built-in one.
	accentColor string
)

var hexColor = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6})$`)

// AccentNames lists the named accents in alphabetical order.
func AccentNames() []string {
	names := make([]string, 0, len(namedAccents))
	for name := range namedAccents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func accentStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// ConfigureTheme applies the [ui] accent setting. Unrecognized values fall
// back to the built-in accent and leave rendered reports uncolored.
func ConfigureTheme(accent string) {
	accentColor, _ = ParseAccent(accent)
	color := accentColor
	if color == "" {
		color = defaultAccent
	}
	Accent = accentStyle(color)
	AccentBold = Accent.Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// ParseAccent normalizes an accent setting to a lipgloss color: a palette
// name, "#rgb"/"#rrggbb" hex, or an ANSI 256 code. The second result is false
// for empty, "none", "off", "default" and anything unparseable.
func ParseAccent(raw string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	if hex, ok := namedAccents[value]; ok {
		return strings.ToLower(hex), true
	}

	if m := hexColor.FindStringSubmatch(value); m != nil {
		digits := m[1]
		if len(digits) == 3 {
			var b strings.Builder
			b.WriteByte('#')
			for i := 0; i < 3; i++ {
				b.WriteByte(digits[i])
				b.WriteByte(digits[i])
			}
			return b.String(), true
		}
		return value, true
	}

	if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 255 {
		return strconv.Itoa(n), true
	}
	return "", false
}

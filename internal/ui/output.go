package ui

import "fmt"

const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func status(symbol, msg string) string {
	return symbol + " " + msg
}

// Success prefixes msg with a check mark.
func Success(msg string) string { return status(SymbolSuccess, msg) }

func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Warning prefixes msg with a warning sign.
func Warning(msg string) string { return status(SymbolWarning, msg) }

func Infof(format string, args ...interface{}) string {
	return status(SymbolInfo, fmt.Sprintf(format, args...))
}

// Header renders a section title.
func Header(msg string) string {
	return AccentBold.Render(msg)
}

// Name renders an item, container or location name.
func Name(name string) string {
	return Accent.Render(name)
}

// ID renders a muted "#12" record reference.
func ID(id int64) string {
	return Muted.Render(fmt.Sprintf("#%d", id))
}

func Hint(msg string) string {
	return Muted.Render(msg)
}

// Plural formats n with the matching noun: "1 item", "3 items".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Count is Plural in parentheses, for trailing badges like "(3 items)".
func Count(n int, singular, plural string) string {
	return "(" + Plural(n, singular, plural) + ")"
}

// IssueCounts is Count for issues, reading "(no issues)" at zero.
func IssueCounts(n int) string {
	if n == 0 {
		return "(no issues)"
	}
	return Count(n, "issue", "issues")
}

package cli

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

// hyperlinksOn reports whether OSC 8 links may be written. JSON output,
// pipes and dumb terminals get plain text.
var hyperlinksOn = func() bool {
	if jsonOutput || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func hyperlink(target, text string) string {
	if !hyperlinksOn() {
		return text
	}
	return "\x1b]8;;" + target + "\x07" + text + "\x1b]8;;\x07"
}

// linkURL renders a backend URL.
func linkURL(rawURL string) string {
	return hyperlink(rawURL, rawURL)
}

// linkFile renders path as a link to its absolute file:// URL.
func linkFile(path string) string {
	return hyperlink(fileURL(path), path)
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// Package slugs provides the slug form used to match names typed on the
// command line ("bin-a") against record names ("Bin A") and to build export
// file names.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Slug converts a name to a lowercase, dash-separated ASCII slug.
// Names that transliterate to nothing fall back to a lowercase, dashed form.
func Slug(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(s), "-"))
	}
	return slugged
}

// Equal reports whether a and b have the same slug.
func Equal(a, b string) bool {
	sa := Slug(a)
	return sa != "" && sa == Slug(b)
}

// FileName builds "<prefix>-<slug(name)>.<ext>", or "<prefix>.<ext>" when
// name is empty.
func FileName(prefix, name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if s := Slug(name); s != "" {
		return prefix + "-" + s + "." + ext
	}
	return prefix + "." + ext
}

package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Manifest lines use ':' as the name/url delimiter and names double as file
// names downstream, so these four characters are always rewritten.
var pathUnsafe = strings.NewReplacer(":", "_", "/", "_", "|", "_", "\\", "_")

// CleanText strips Unicode control/format characters, transliterates to the
// nearest ASCII representation (NFKD, non-ASCII runes dropped) and replaces
// the delimiter characters with underscores. Total and idempotent; empty
// input yields empty output.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFKD.String(text) {
		if r > unicode.MaxASCII || unicode.In(r, unicode.C) {
			continue
		}
		b.WriteRune(r)
	}
	return pathUnsafe.Replace(b.String())
}

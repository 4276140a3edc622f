// Package slug turns display names into URL-safe path segments.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFD and strips combining marks, so that
// "São José" and "Sao Jose" produce the same slug.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make returns the URL slug for a display name: accents folded, lowercased,
// runs of non-alphanumeric characters collapsed to a single hyphen.
// Make("St. Louis") == "st-louis".
func Make(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		// Transform only fails on malformed input; fall back to the raw name.
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

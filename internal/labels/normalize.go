// Package labels maps free-text client and product names onto the closed
// label-layout and canonical-product sets. All resolution functions are
// total: unknown input falls back to documented defaults, never errors.
package labels

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares free text for keyword matching: diacritics stripped,
// runs of non-alphanumeric characters collapsed to single spaces, trimmed,
// upper-cased. "Pak-Choï bio" becomes "PAK CHOI BIO".
func Normalize(s string) string {
	// A fresh transformer per call; transform chains are not safe to share.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToUpper(r))
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// Slug converts a product name into a lowercase filename-safe slug,
// e.g. "Albahaca fresca" -> "albahaca-fresca".
func Slug(s string) string {
	n := Normalize(s)
	if n == "" {
		return "item"
	}
	return strings.ToLower(strings.ReplaceAll(n, " ", "-"))
}

// UnnamedProduct is the sentinel product name used when a recognized item
// carries no usable name. Item names are never empty after sanitization.
const UnnamedProduct = "Producto sin nombre"

// SanitizeProductName trims free text and substitutes the sentinel for empty
// values. The result is never the empty string.
func SanitizeProductName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnnamedProduct
	}
	return s
}

// Package sanitizer normalizes inbound business data before validation and
// storage. All functions are idempotent and handle bad input by returning
// the empty value rather than an error.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses every internal whitespace
// run to one space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeTitle(title string) string {
	return TrimAndNormalize(title)
}

// NormalizeProductKey maps a price list key to its canonical uppercase form
// with underscores, so "combo a" and "COMBO_A" address the same product.
func NormalizeProductKey(key string) string {
	normalized := strings.ToUpper(TrimAndNormalize(key))
	return strings.ReplaceAll(normalized, " ", "_")
}

// NormalizeID lowercases an entity ID and strips internal whitespace.
func NormalizeID(id string) string {
	normalized := TrimAndNormalize(id)
	return strings.ReplaceAll(normalized, " ", "")
}

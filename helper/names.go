package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks ("Jiří" -> "Jiri").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

var slugReplacer = strings.NewReplacer(" ", "_", ".", "", "/", "_", "\\", "_")

// FileSlug turns a person name into a lowercase token safe for file names.
func FileSlug(name string) string {
	return strings.ToLower(slugReplacer.Replace(RemoveDiacritics(strings.TrimSpace(name))))
}

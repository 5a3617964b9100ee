package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeHeader lowercases and trims a header or synonym. With fold set it
// also strips diacritics and collapses inner whitespace, so "Société " and
// "societe" compare equal.
func normalizeHeader(s string, fold bool) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !fold {
		return s
	}
	// Transformers are stateful, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}

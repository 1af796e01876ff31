package nlquery

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// punctuation removed from questions and captured parameters.
var punctuation = strings.NewReplacer("?", "", ".", "", "!", "")

// Normalize canonicalizes a raw question for matching: lowercase, NFC,
// remove '?', '.' and '!', then trim surrounding whitespace.
//
// Normalize is deterministic and idempotent. It accepts the empty string.
func Normalize(raw string) string {
	// Casers carry state and are not safe to share between goroutines.
	s := cases.Lower(language.Und).String(raw)
	s = norm.NFC.String(s)
	s = punctuation.Replace(s)
	return strings.TrimSpace(s)
}

// cleanParam trims a captured value and strips punctuation again.
// Captures come from normalized text, so the strip is normally a no-op.
func cleanParam(s string) string {
	return strings.TrimSpace(punctuation.Replace(strings.TrimSpace(s)))
}

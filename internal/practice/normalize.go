// Package practice scores transcribed attempts at a phrase against the
// reference text, explains the difference, and advances the per-phrase
// mastery counters.
package practice

import (
	"strings"
	"unicode"
)

// punctuation is stripped before comparison. ASCII, CJK and full-width marks,
// Latin guillemets, the Thai paiyannoi and curly quotes.
const punctuation = `.,!?;:'"()[]{}` +
	"。、！？「」『』【】（）：；．，・" +
	"·¿¡«»" +
	"ฯ" +
	"‘’“”"

func isPunct(r rune) bool {
	return strings.ContainsRune(punctuation, r)
}

// unit is one rune of normalized text together with the offset of the
// source rune it came from.
type unit struct {
	r     rune
	start int
}

// normalizeUnits is the single normalization pass. A space produced by
// collapsing a whitespace run points at the first rune of that run.
func normalizeUnits(src []rune) []unit {
	out := make([]unit, 0, len(src))
	pending := -1
	for i, r := range src {
		switch {
		case unicode.IsSpace(r):
			if pending < 0 {
				pending = i
			}
		case isPunct(r):
		default:
			if pending >= 0 && len(out) > 0 {
				out = append(out, unit{r: ' ', start: pending})
			}
			pending = -1
			out = append(out, unit{r: unicode.ToLower(r), start: i})
		}
	}
	return out
}

// Normalize lower-cases text, strips punctuation and collapses whitespace.
func Normalize(text string) string {
	units := normalizeUnits([]rune(text))
	var sb strings.Builder
	sb.Grow(len(text))
	for _, u := range units {
		sb.WriteRune(u.r)
	}
	return sb.String()
}

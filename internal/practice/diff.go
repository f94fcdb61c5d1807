package practice

import (
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/vytor/phraseflash/internal/models"
)

// Granularity is the unit the diff aligns over.
type Granularity int

const (
	WordBased Granularity = iota
	CharacterBased
)

func (g Granularity) String() string {
	if g == CharacterBased {
		return "character"
	}
	return "word"
}

// DefaultCharacterLanguages returns the languages written without spaces
// between words.
func DefaultCharacterLanguages() []string {
	return []string{"ja", "zh", "th"}
}

// Aligner computes attempt/reference diffs. The zero value is not usable;
// construct with NewAligner.
type Aligner struct {
	charLangs map[string]struct{}
}

// NewAligner returns an Aligner that treats langs as character-based.
// With no langs, DefaultCharacterLanguages is used.
func NewAligner(langs ...string) *Aligner {
	if len(langs) == 0 {
		langs = DefaultCharacterLanguages()
	}
	a := &Aligner{charLangs: make(map[string]struct{}, len(langs))}
	for _, l := range langs {
		if base := primarySubtag(l); base != "" {
			a.charLangs[base] = struct{}{}
		}
	}
	return a
}

var defaultAligner = NewAligner()

// Diff aligns attempt against reference with the default language set.
func Diff(attempt, reference, lang string) []models.DiffSpan {
	return defaultAligner.Diff(attempt, reference, lang)
}

// Granularity resolves lang. A missing tag is character-based.
func (a *Aligner) Granularity(lang string) Granularity {
	base := primarySubtag(lang)
	if base == "" {
		return CharacterBased
	}
	if _, ok := a.charLangs[base]; ok {
		return CharacterBased
	}
	return WordBased
}

// Diff returns the spans that turn reference into attempt. Equal and Delete
// text comes from reference, Insert text from attempt, both only trimmed.
func (a *Aligner) Diff(attempt, reference, lang string) []models.DiffSpan {
	na, nr := Normalize(attempt), Normalize(reference)
	switch {
	case na == "" && nr == "":
		return []models.DiffSpan{}
	case na == "":
		return []models.DiffSpan{{Type: models.DiffDelete, Value: strings.TrimSpace(reference)}}
	case nr == "":
		return []models.DiffSpan{{Type: models.DiffInsert, Value: strings.TrimSpace(attempt)}}
	case na == nr:
		return []models.DiffSpan{{Type: models.DiffEqual, Value: strings.TrimSpace(reference)}}
	}

	if a.Granularity(lang) == CharacterBased {
		ak, ad := charPieces(attempt)
		rk, rd := charPieces(reference)
		return mergeSpans(emit(align(ak, rk), ad, rd), "", false)
	}
	ak, ad := wordPieces(attempt)
	rk, rd := wordPieces(reference)
	return mergeSpans(emit(align(ak, rk), ad, rd), " ", true)
}

func primarySubtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if t, err := language.Parse(tag); err == nil {
		base, _ := t.Base()
		return base.String()
	}
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

// step is one edit operation. ai and bi index the attempt and reference
// units; the side that does not take part is -1.
type step struct {
	kind   models.DiffType
	ai, bi int
}

// align runs LCS over attempt and reference and backtracks from the end,
// preferring Delete over Insert on ties.
func align[T comparable](attempt, reference []T) []step {
	n, m := len(attempt), len(reference)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if attempt[i-1] == reference[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	steps := make([]step, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && attempt[i-1] == reference[j-1]:
			steps = append(steps, step{kind: models.DiffEqual, ai: i - 1, bi: j - 1})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			steps = append(steps, step{kind: models.DiffDelete, ai: -1, bi: j - 1})
			j--
		default:
			steps = append(steps, step{kind: models.DiffInsert, ai: i - 1, bi: -1})
			i--
		}
	}
	slices.Reverse(steps)
	return steps
}

func emit(steps []step, attemptText, referenceText []string) []models.DiffSpan {
	spans := make([]models.DiffSpan, 0, len(steps))
	for _, s := range steps {
		var value string
		if s.kind == models.DiffInsert {
			value = attemptText[s.ai]
		} else {
			value = referenceText[s.bi]
		}
		spans = append(spans, models.DiffSpan{Type: s.kind, Value: value})
	}
	return spans
}

// mergeSpans joins runs of the same type with sep. With trailing set, every
// merged span except the last gets one trailing space.
func mergeSpans(spans []models.DiffSpan, sep string, trailing bool) []models.DiffSpan {
	merged := make([]models.DiffSpan, 0, len(spans))
	for _, s := range spans {
		if n := len(merged); n > 0 && merged[n-1].Type == s.Type {
			merged[n-1].Value += sep + s.Value
			continue
		}
		merged = append(merged, s)
	}
	if trailing {
		for i := 0; i < len(merged)-1; i++ {
			merged[i].Value += " "
		}
	}
	return merged
}

// charPieces splits text into normalized runes and, for each, the verbatim
// source text it stands for: the rune itself plus any dropped punctuation
// up to the next kept rune. Leading punctuation joins the first piece.
func charPieces(text string) ([]rune, []string) {
	src := []rune(strings.TrimSpace(text))
	units := normalizeUnits(src)
	keys := make([]rune, len(units))
	display := make([]string, len(units))
	for k, u := range units {
		start, end := u.start, len(src)
		if k == 0 {
			start = 0
		}
		if k+1 < len(units) {
			end = units[k+1].start
		}
		keys[k] = u.r
		display[k] = string(src[start:end])
	}
	return keys, display
}

// wordPieces splits text on whitespace. Words that normalize to nothing
// (bare punctuation) are attached to a neighbouring word so that the
// displayed text still contains them.
func wordPieces(text string) ([]string, []string) {
	var keys, display, leading []string
	for _, w := range strings.Fields(text) {
		key := Normalize(w)
		if key == "" {
			if n := len(display); n > 0 {
				display[n-1] += " " + w
			} else {
				leading = append(leading, w)
			}
			continue
		}
		if len(leading) > 0 {
			w = strings.Join(append(leading, w), " ")
			leading = nil
		}
		keys = append(keys, key)
		display = append(display, w)
	}
	return keys, display
}

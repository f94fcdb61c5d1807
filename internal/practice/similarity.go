package practice

import "unicode/utf8"

// MaxTextRunes bounds the length of any text handed to Compare or Submit.
// Alignment allocates a table proportional to the product of both lengths.
const MaxTextRunes = 1000

// WithinLimit reports whether s is short enough to score.
func WithinLimit(s string) bool {
	return utf8.RuneCountInString(s) <= MaxTextRunes
}

// SimilarityThreshold is the minimum similarity for an attempt to count as
// correct.
const SimilarityThreshold = 0.9

// Levenshtein returns the unit-cost edit distance between a and b, measured
// in runes.
func Levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	row := make([]int, len(br)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}
	return row[len(br)]
}

// Similarity scores attempt against reference in [0, 1] after
// normalizing both.
func Similarity(attempt, reference string) float64 {
	a, r := Normalize(attempt), Normalize(reference)
	switch {
	case a == "" && r == "":
		return 1
	case a == "" || r == "":
		return 0
	case a == r:
		return 1
	}

	maxLen := max(len([]rune(a)), len([]rune(r)))
	score := 1 - float64(Levenshtein(a, r))/float64(maxLen)
	return max(0, min(1, score))
}

// IsCorrect applies SimilarityThreshold.
func IsCorrect(similarity float64) bool {
	return similarity >= SimilarityThreshold
}

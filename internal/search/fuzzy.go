package search

import (
	"strings"
	"unicode"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
)

// tokenize splits lowercase text into letter/digit words
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// allowedTypos returns the number of typos allowed based on word length:
// 1-3 chars = 0, 4-6 chars = 1, 7+ chars = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// matchTokens matches every query token against a distinct key token,
// tolerating typos. Word order does not matter. Returns the summed edit
// distance, or false when some query token finds no partner.
func matchTokens(queryTokens, keyTokens []string) (int, bool) {
	if len(queryTokens) == 0 {
		return 0, false
	}

	used := make([]bool, len(keyTokens))
	total := 0

	for _, q := range queryTokens {
		best, bestIdx := -1, -1
		for i, k := range keyTokens {
			if used[i] {
				continue
			}
			d := tokenDistance(q, k)
			if d >= 0 && (best < 0 || d < best) {
				best, bestIdx = d, i
			}
		}
		if bestIdx < 0 {
			return 0, false
		}
		used[bestIdx] = true
		total += best
	}

	return total, true
}

// tokenDistance scores a query token against a key token: 0 for an exact
// or prefix match, the edit distance when within the typo allowance,
// -1 otherwise.
func tokenDistance(query, key string) int {
	if strings.HasPrefix(key, query) {
		return 0
	}
	maxTypos := allowedTypos(len([]rune(query)))
	if maxTypos == 0 {
		return -1
	}
	if d := fuzzysearch.LevenshteinDistance(query, key); d <= maxTypos {
		return d
	}
	return -1
}

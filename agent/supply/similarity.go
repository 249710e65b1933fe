package supply

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// similarity is difflib's character-level SequenceMatcher ratio.
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// closestMatch returns the candidate most similar to target when its ratio
// reaches cutoff. Ties keep the first candidate.
func closestMatch(target string, candidates []string, cutoff float64) (string, float64, bool) {
	var (
		best      string
		bestScore float64
		found     bool
	)
	for _, c := range candidates {
		score := similarity(target, c)
		if score < cutoff {
			continue
		}
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, bestScore, found
}

// Package suggest provides the edit-distance closest-match capability
// used for sheet and column rename hints.
package suggest

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"ppetrack/internal/port"
)

type editDistance struct{}

// NewEditDistance returns a Suggester scoring candidates by normalized
// Levenshtein distance, case-insensitively.
func NewEditDistance() port.Suggester {
	return editDistance{}
}

func (editDistance) Closest(target string, candidates []string) (string, float64, bool) {
	if len(candidates) == 0 {
		return "", 0, false
	}
	best := ""
	bestScore := -1.0
	for _, cand := range candidates {
		score := similarity(target, cand)
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best, bestScore, true
}

func similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

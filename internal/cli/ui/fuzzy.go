package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the default maximum edit distance to consider for fuzzy matching
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions is the default maximum number of suggestions to return
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching behavior
type FuzzyMatchOptions struct {
	MaxDistance    int  // Maximum Levenshtein distance to consider (default: 3)
	MaxSuggestions int  // Maximum number of suggestions to return (default: 3)
	CaseSensitive  bool // Whether matching is case-sensitive (default: false)
}

type suggestion struct {
	value    string
	distance int
}

// FindSimilar returns the candidates closest to target, nearest first. Ties
// keep alphabetical order.
//
//	FindSimilar("Actr", []string{"Actor", "Pawn"}, nil) // ["Actor"]
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	o := FuzzyMatchOptions{MaxDistance: DefaultMaxDistance, MaxSuggestions: DefaultMaxSuggestions}
	if opts != nil {
		o.CaseSensitive = opts.CaseSensitive
		if opts.MaxDistance > 0 {
			o.MaxDistance = opts.MaxDistance
		}
		if opts.MaxSuggestions > 0 {
			o.MaxSuggestions = opts.MaxSuggestions
		}
	}

	fold := func(s string) string {
		if o.CaseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	var suggestions []suggestion
	for _, candidate := range candidates {
		dist := LevenshteinDistance(fold(target), fold(candidate))
		if dist <= o.MaxDistance {
			suggestions = append(suggestions, suggestion{value: candidate, distance: dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance != suggestions[j].distance {
			return suggestions[i].distance < suggestions[j].distance
		}
		return suggestions[i].value < suggestions[j].value
	})

	result := make([]string, 0, o.MaxSuggestions)
	for i := 0; i < len(suggestions) && i < o.MaxSuggestions; i++ {
		result = append(result, suggestions[i].value)
	}
	return result
}

// LevenshteinDistance counts the single-rune insertions, deletions and
// substitutions needed to turn s1 into s2.
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

package reconcile

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestionDistance caps how far a near-miss may be from the target
// before it stops being worth a human's time
const maxSuggestionDistance = 3

// Suggestion is a near-miss candidate offered for manual review of an
// unmatched player. Suggestions are advisory only; the matcher itself never
// acts on them.
type Suggestion struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

// Suggest ranks candidates by edit distance from the target (both compared on
// normalized keys) and returns up to max of the closest ones. An empty slice
// means nothing plausible was found.
func Suggest(target string, candidates []string, max int) []Suggestion {
	key := NormalizeName(target)
	if key == "" || max <= 0 {
		return nil
	}

	var out []Suggestion
	for _, name := range candidates {
		d := fuzzy.LevenshteinDistance(key, NormalizeName(name))
		if d <= maxSuggestionDistance {
			out = append(out, Suggestion{Name: name, Distance: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})

	if len(out) > max {
		out = out[:max]
	}
	return out
}

// Package suggest ranks the closest known function name for an unresolved
// identifier, mirroring runtime/planner/planner.go's findClosestMatch for
// decorator names (SPEC_FULL.md §4). It is consulted by analyze when the
// parser reports parser.UndefinedFunction, never by parser itself, so the
// syntactic family stays free of a fuzzy-matching dependency.
package suggest

import "github.com/lithammer/fuzzysearch/fuzzy"

// Function returns the candidate name closest to name, and whether any
// candidate was found. An empty candidates slice always reports false.
func Function(name string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return "", false
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target, true
}

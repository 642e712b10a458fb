package shell

import "github.com/sergi/go-diff/diffmatchpatch"

// closestName returns the candidate with the smallest Levenshtein distance to
// name, or "" when nothing comes close enough to be a plausible typo. The
// threshold scales with the input so short names don't suggest wildly.
func closestName(name string, candidates []string) string {
	if name == "" {
		return ""
	}
	limit := len(name) / 2
	if limit < 1 {
		limit = 1
	}
	if limit > 3 {
		limit = 3
	}

	dmp := diffmatchpatch.New()
	best := ""
	bestDist := limit + 1
	for _, cand := range candidates {
		if cand == name {
			continue
		}
		diffs := dmp.DiffMain(name, cand, false)
		if dist := dmp.DiffLevenshtein(diffs); dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}

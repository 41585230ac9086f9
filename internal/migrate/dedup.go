package migrate

import "strings"

// dedupeAmbiguous collapses MigrationAmbiguousRewrite-shaped issues
// that recur across files into one representative per distinct
// message, the same word-overlap similarity strategy
// internal/eval_analyzer's FindSimilarDesignDocs uses to avoid
// generating a new design doc per near-identical failure cluster,
// rebased here onto per-file conversion issues instead of design docs.
func dedupeAmbiguous(issues []Issue) []Issue {
	var kept []Issue
	for _, issue := range issues {
		if issue.FeatureTag != "ambiguous-rewrite" {
			kept = append(kept, issue)
			continue
		}
		duplicate := false
		for _, k := range kept {
			if k.FeatureTag == "ambiguous-rewrite" && wordOverlap(k.Message, issue.Message) >= 0.75 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, issue)
		}
	}
	return kept
}

// wordOverlap is a Jaccard-style similarity over each message's
// lowercased word set.
func wordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

package match

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.6

// Suggest returns the candidate most similar to name. Ties go to the
// earlier candidate. ok is false when nothing reaches MinSimilarity or
// name is itself a candidate.
func Suggest(name string, candidates []string) (best string, ok bool) {
	bestScore := MinSimilarity

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		score := Similarity(name, c)
		if score > bestScore || (!ok && score == bestScore) {
			best, bestScore, ok = c, score, true
		}
	}

	return best, ok
}

// Hint formats a suggestion as a message suffix, e.g. ` (did you mean "Team"?)`,
// or returns "" when there is none.
func Hint(name string, candidates []string) string {
	best, ok := Suggest(name, candidates)
	if !ok {
		return ""
	}

	return ` (did you mean "` + best + `"?)`
}

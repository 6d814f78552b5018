package common

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Dedup returns s without repeated elements, keeping first occurrences.
func Dedup[S ~[]E, E comparable](s S) S {
	seen := make(map[E]bool, len(s))
	out := make(S, 0, len(s))

	for _, v := range s {
		if seen[v] {
			continue
		}

		seen[v] = true
		out = append(out, v)
	}

	return out
}

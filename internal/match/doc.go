// Package match finds the closest known name for a misspelled one. It backs
// the "did you mean" hints on unknown sheets, custom types, options and
// backends.
//
// Key functions:
//   - Normalize: folds case and strips separators before comparing
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the best candidate above a similarity threshold
package match

// Package search filters command lists by exact, regex or fuzzy queries.
package search

// Filter returns the candidates matching query, in their original order.
// The input slice is never modified.
func Filter(candidates []string, query string, mode Mode, caseSensitive bool) []string {
	return FilterWith(candidates, NewMatcher(query, mode, caseSensitive))
}

// FilterWith filters candidates with an already compiled matcher.
func FilterWith(candidates []string, matcher Matcher) []string {
	filtered := make([]string, 0, len(candidates))
	for _, cmd := range candidates {
		if matcher.Match(cmd) {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}

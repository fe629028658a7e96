package search

import (
	"regexp"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Matcher tests commands against a compiled query.
type Matcher interface {
	Match(cmd string) bool
	// Indices returns the byte offsets of the characters of cmd that the
	// query matched, in ascending order.
	Indices(cmd string) []int
}

// NewMatcher compiles query for the given mode. An empty query matches
// every command. A regex that does not compile also matches every command,
// so a half-typed pattern never empties the list.
func NewMatcher(query string, mode Mode, caseSensitive bool) Matcher {
	if query == "" {
		return matchAll{}
	}

	switch mode {
	case ModeFuzzy:
		if caseSensitive {
			return subsequenceMatcher{pattern: query}
		}
		return fuzzyMatcher{pattern: query}
	case ModeRegex:
		return newRegexMatcher(query, caseSensitive)
	default:
		return newRegexMatcher(regexp.QuoteMeta(query), caseSensitive)
	}
}

type matchAll struct{}

func (matchAll) Match(string) bool     { return true }
func (matchAll) Indices(string) []int { return nil }

type regexMatcher struct {
	re *regexp.Regexp
}

func newRegexMatcher(pattern string, caseSensitive bool) Matcher {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return matchAll{}
	}
	return regexMatcher{re: re}
}

func (m regexMatcher) Match(cmd string) bool {
	return m.re.MatchString(cmd)
}

func (m regexMatcher) Indices(cmd string) []int {
	var indices []int
	for _, loc := range m.re.FindAllStringIndex(cmd, -1) {
		for i := loc[0]; i < loc[1]; {
			indices = append(indices, i)
			_, size := utf8.DecodeRuneInString(cmd[i:])
			i += size
		}
	}
	return indices
}

// fuzzyMatcher ignores case.
type fuzzyMatcher struct {
	pattern string
}

func (m fuzzyMatcher) find(cmd string) []fuzzy.Match {
	return fuzzy.FindNoSort(m.pattern, []string{cmd})
}

func (m fuzzyMatcher) Match(cmd string) bool {
	return len(m.find(cmd)) > 0
}

func (m fuzzyMatcher) Indices(cmd string) []int {
	matches := m.find(cmd)
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// subsequenceMatcher is the case sensitive fuzzy matcher: every rune of the
// pattern must appear in cmd, in order, with exactly the same case.
type subsequenceMatcher struct {
	pattern string
}

func (m subsequenceMatcher) Match(cmd string) bool {
	return m.Indices(cmd) != nil
}

func (m subsequenceMatcher) Indices(cmd string) []int {
	pattern := []rune(m.pattern)
	indices := make([]int, 0, len(pattern))
	next := 0
	for i, r := range cmd {
		if next == len(pattern) {
			break
		}
		if r == pattern[next] {
			indices = append(indices, i)
			next++
		}
	}
	if next < len(pattern) {
		return nil
	}
	return indices
}

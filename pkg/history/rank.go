package history

import (
	"slices"
	"sort"
)

// Rank orders distinct commands by how often they were run, breaking ties
// by recency. The most frequent command comes first; among equally frequent
// commands the one run most recently wins.
func Rank(history []string) []string {
	return RankOf(history)
}

// RankOf is the generic form of Rank.
func RankOf[T comparable](history []T) []T {
	if len(history) == 0 {
		return []T{}
	}

	frequency := make(map[T]int, len(history))
	lastSeen := make(map[T]int, len(history))
	for i, entry := range history {
		frequency[entry]++
		lastSeen[entry] = i
	}

	ranked := slices.Clone(history)
	sort.SliceStable(ranked, func(i, j int) bool {
		return lastSeen[ranked[i]] > lastSeen[ranked[j]]
	})
	// Equal entries now sit next to each other.
	ranked = slices.Compact(ranked)

	sort.SliceStable(ranked, func(i, j int) bool {
		return frequency[ranked[i]] > frequency[ranked[j]]
	})
	return ranked
}

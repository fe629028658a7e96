package views

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// View names one of the three command lists.
type View int

const (
	Sorted View = iota
	Favorites
	All
)

var viewNames = map[View]string{
	Sorted:    "sorted",
	Favorites: "favorites",
	All:       "all",
}

// Next cycles sorted -> favorites -> all -> sorted.
func (v View) Next() View {
	switch v {
	case Sorted:
		return Favorites
	case Favorites:
		return All
	default:
		return Sorted
	}
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseView parses a view name as printed by String.
func ParseView(name string) (View, error) {
	for view, viewName := range viewNames {
		if strings.EqualFold(name, viewName) {
			return view, nil
		}
	}
	return Sorted, errors.Newf("unknown view %q (expected sorted, favorites or all)", name)
}

// CommandSet holds one list of commands per view.
type CommandSet map[View][]string

// Clone deep copies the set.
func (s CommandSet) Clone() CommandSet {
	clone := make(CommandSet, len(s))
	for view, commands := range s {
		clone[view] = slices.Clone(commands)
	}
	return clone
}

func (s CommandSet) remove(cmd string) {
	for view, commands := range s {
		s[view] = removeAll(commands, cmd)
	}
}

func removeAll(commands []string, cmd string) []string {
	return slices.DeleteFunc(commands, func(c string) bool { return c == cmd })
}

// dedup keeps the first occurrence of every command.
func dedup(commands []string) []string {
	seen := make(map[string]struct{}, len(commands))
	unique := make([]string, 0, len(commands))
	for _, cmd := range commands {
		if _, ok := seen[cmd]; ok {
			continue
		}
		seen[cmd] = struct{}{}
		unique = append(unique, cmd)
	}
	return unique
}

package search

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Mode selects how a query is matched against commands.
type Mode int

const (
	ModeExact Mode = iota
	ModeRegex
	ModeFuzzy
)

var modeNames = map[Mode]string{
	ModeExact: "exact",
	ModeRegex: "regex",
	ModeFuzzy: "fuzzy",
}

// Next cycles exact -> regex -> fuzzy -> exact.
func (m Mode) Next() Mode {
	switch m {
	case ModeExact:
		return ModeRegex
	case ModeRegex:
		return ModeFuzzy
	default:
		return ModeExact
	}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode parses a mode name as printed by String.
func ParseMode(name string) (Mode, error) {
	for mode, modeName := range modeNames {
		if strings.EqualFold(name, modeName) {
			return mode, nil
		}
	}
	return ModeExact, errors.Newf("unknown search mode %q (expected exact, regex or fuzzy)", name)
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/NeverVane/hsb/internal/session"
)

// keyMap defines the TUI key bindings
type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Left          key.Binding
	Right         key.Binding
	Backspace     key.Binding
	Delete        key.Binding
	Favorite      key.Binding
	SearchMode    key.Binding
	CaseSensitive key.Binding
	View          key.Binding
	Accept        key.Binding
	AcceptNoRun   key.Binding
	Quit          key.Binding
}

// ShortHelp is the single help line under the query.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Accept, k.AcceptNoRun, k.Delete, k.Quit, k.Favorite}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Accept, k.AcceptNoRun, k.Delete, k.Favorite},
		{k.SearchMode, k.CaseSensitive, k.View, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "move"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "move"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "previous page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdown", "next page"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete"),
		key.WithHelp("del", "remove"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("C-f", "add/rm fav"),
	),
	SearchMode: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "search mode"),
	),
	CaseSensitive: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "case"),
	),
	View: key.NewBinding(
		key.WithKeys("ctrl+_"),
		key.WithHelp("C-/", "view"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	AcceptNoRun: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "insert"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// bindings maps key bindings to session keys, checked in order.
var bindings = []struct {
	binding key.Binding
	key     session.Key
}{
	{keys.Up, session.KeyUp},
	{keys.Down, session.KeyDown},
	{keys.PageUp, session.KeyPageUp},
	{keys.PageDown, session.KeyPageDown},
	{keys.Left, session.KeyCursorLeft},
	{keys.Right, session.KeyCursorRight},
	{keys.Backspace, session.KeyBackspace},
	{keys.Delete, session.KeyDeleteEntry},
	{keys.Favorite, session.KeyToggleFavorite},
	{keys.SearchMode, session.KeyToggleMode},
	{keys.CaseSensitive, session.KeyToggleCase},
	{keys.View, session.KeyToggleView},
	{keys.Accept, session.KeyAccept},
	{keys.AcceptNoRun, session.KeyAcceptNoNewline},
	{keys.Quit, session.KeyCancel},
}

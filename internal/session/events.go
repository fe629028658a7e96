package session

// Key is a classified keystroke.
type Key int

const (
	KeyChar Key = iota
	KeyBackspace
	KeyCursorLeft
	KeyCursorRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyDeleteEntry
	KeyToggleFavorite
	KeyToggleMode
	KeyToggleCase
	KeyToggleView
	KeyAccept
	KeyAcceptNoNewline
	KeyCancel
)

// Event is one keystroke. Char is set for KeyChar only.
type Event struct {
	Key  Key
	Char rune
}

// Char returns the event for typing r.
func Char(r rune) Event {
	return Event{Key: KeyChar, Char: r}
}

// Press returns the event for a non-character key.
func Press(k Key) Event {
	return Event{Key: k}
}

// Selection is the command the user picked and whether the shell should
// run it right away.
type Selection struct {
	Command string
	Execute bool
}

// Outcome tells the caller what to do after an event.
type Outcome struct {
	// Done ends the session. Selection is nil when the user cancelled.
	Done      bool
	Selection *Selection

	// ConfirmDelete names a command the user asked to delete. The caller
	// confirms and then calls Session.Delete.
	ConfirmDelete string
}

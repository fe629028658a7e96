// Package query implements the single line query buffer with a character
// based cursor.
package query

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// promptSeparator is the width of the gap between the prompt and the query.
const promptSeparator = 1

// Editor holds the query text and a cursor counted in characters, from 0
// to the number of characters in the text.
type Editor struct {
	text   string
	cursor int
}

// NewEditor returns an editor holding text with the cursor at its end.
func NewEditor(text string) *Editor {
	return &Editor{text: text, cursor: utf8.RuneCountInString(text)}
}

// Text returns the query.
func (e *Editor) Text() string {
	return e.text
}

// Cursor returns the cursor position in characters.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Len returns the number of characters in the query.
func (e *Editor) Len() int {
	return utf8.RuneCountInString(e.text)
}

// byteOffset converts a character index into a byte offset in the text.
func (e *Editor) byteOffset(index int) int {
	if index <= 0 {
		return 0
	}
	n := 0
	for offset := range e.text {
		if n == index {
			return offset
		}
		n++
	}
	return len(e.text)
}

// InsertChar inserts r at the cursor. The cursor does not move.
func (e *Editor) InsertChar(r rune) {
	at := e.byteOffset(e.cursor)
	e.text = e.text[:at] + string(r) + e.text[at:]
}

// RemoveChar deletes the character before the cursor. Nothing happens at
// the start of the query. The cursor does not move.
func (e *Editor) RemoveChar() {
	if e.cursor == 0 {
		return
	}
	start := e.byteOffset(e.cursor - 1)
	end := e.byteOffset(e.cursor)
	e.text = e.text[:start] + e.text[end:]
}

// MoveCursor moves the cursor by delta characters, clamped to the text.
func (e *Editor) MoveCursor(delta int) {
	e.cursor = min(max(e.cursor+delta, 0), e.Len())
}

// Type inserts r and steps over it, the way a keypress does.
func (e *Editor) Type(r rune) {
	e.InsertChar(r)
	e.MoveCursor(1)
}

// Backspace deletes the character before the cursor and steps back.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.RemoveChar()
	e.MoveCursor(-1)
}

// CursorWidth is the display width of the text before the cursor. Wide
// characters count twice, combining marks not at all.
func (e *Editor) CursorWidth() int {
	width := 0
	for _, r := range e.text[:e.byteOffset(e.cursor)] {
		width += runewidth.RuneWidth(r)
	}
	return width
}

// Column is the terminal column of the cursor when the query is drawn
// after prompt.
func (e *Editor) Column(prompt string) int {
	return runewidth.StringWidth(prompt) + promptSeparator + e.CursorWidth()
}

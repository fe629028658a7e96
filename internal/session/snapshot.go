package session

import (
	"fmt"

	"github.com/NeverVane/hsb/internal/search"
	"github.com/NeverVane/hsb/internal/views"
)

// Row is one visible command.
type Row struct {
	Command     string
	Favorite    bool
	Highlighted bool
	// Byte offsets of the characters the query matched.
	Matches []int
}

// Snapshot is everything a renderer needs to draw the session.
type Snapshot struct {
	Rows          []Row
	Page          int
	TotalPages    int
	Mode          search.Mode
	CaseSensitive bool
	View          views.View
	Prompt        string
	Query         string
	// Terminal column of the cursor on the query line.
	CursorColumn int
}

// Snapshot captures the current page for rendering.
func (s *Session) Snapshot() Snapshot {
	active := s.state.Active()
	total := s.pager.TotalPages(active)
	page := s.pager.Page
	if total == 0 {
		page = 0
	}

	contents := s.pager.PageContents(active)
	rows := make([]Row, len(contents))
	for i, cmd := range contents {
		rows[i] = Row{
			Command:     cmd,
			Favorite:    s.state.IsFavorite(cmd),
			Highlighted: i == s.pager.Highlighted,
			Matches:     s.matcher.Indices(cmd),
		}
	}

	return Snapshot{
		Rows:          rows,
		Page:          page,
		TotalPages:    total,
		Mode:          s.mode,
		CaseSensitive: s.caseSensitive,
		View:          s.state.View(),
		Prompt:        s.prompt,
		Query:         s.editor.Text(),
		CursorColumn:  s.editor.Column(s.prompt),
	}
}

// CaseLabel is "sensitive" or "insensitive".
func (snap Snapshot) CaseLabel() string {
	if snap.CaseSensitive {
		return "sensitive"
	}
	return "insensitive"
}

// Status renders the status bar line.
func (snap Snapshot) Status() string {
	return fmt.Sprintf("- view:%s (C-/) - search:%s (C-e) - case:%s (C-t) - page %d/%d -",
		snap.View, snap.Mode, snap.CaseLabel(), snap.Page, snap.TotalPages)
}

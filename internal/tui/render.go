package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/NeverVane/hsb/internal/session"
)

// renderQuery draws "prompt query" and paints the cursor cell at the
// snapshot's cursor column.
func (m model) renderQuery(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.prompt.Render(snap.Prompt))
	b.WriteString(" ")

	col := runewidth.StringWidth(snap.Prompt) + 1
	painted := false
	for _, r := range snap.Query {
		if col == snap.CursorColumn && !painted {
			b.WriteString(m.styles.cursor.Render(string(r)))
			painted = true
		} else {
			b.WriteRune(r)
		}
		col += runewidth.RuneWidth(r)
	}
	if !painted {
		b.WriteString(m.styles.cursor.Render(" "))
	}
	return b.String()
}

// renderRow draws one command, truncated to the terminal width, with the
// matched characters picked out.
func (m model) renderRow(row session.Row) string {
	base := m.styles.row
	if row.Favorite {
		base = m.styles.favorite
	}
	if row.Highlighted {
		base = m.styles.highlighted
	}
	match := base.Foreground(m.styles.match.GetForeground()).Bold(true)

	matched := make(map[int]bool, len(row.Matches))
	for _, i := range row.Matches {
		matched[i] = true
	}

	var b strings.Builder
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := base
		if runMatched {
			style = match
		}
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}

	width := 0
	for i, r := range row.Command {
		w := runewidth.RuneWidth(r)
		if m.width > 0 && width+w > m.width {
			break
		}
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run.WriteRune(r)
		width += w
	}
	flush()

	if row.Highlighted && m.width > width {
		b.WriteString(base.Render(strings.Repeat(" ", m.width-width)))
	}
	return b.String()
}

// Package tui is the bubbletea front end of a search session.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"

	"github.com/NeverVane/hsb/internal/logger"
	"github.com/NeverVane/hsb/internal/output"
	"github.com/NeverVane/hsb/internal/session"
)

// Options configures the TUI
type Options struct {
	// catppuccin flavor name
	Theme string
	// Rows above the command list
	ChromeRows int
	ShowHelp   bool
	// Fixed page size; 0 fits the terminal
	PageSize int
	// Where the TUI is drawn; stdout when nil
	Output io.Writer
}

// Mode of the TUI
type Mode int

const (
	ModeSearch Mode = iota
	ModeDeleteConfirm
)

// model is the bubbletea model wrapping a session
type model struct {
	session *session.Session
	opts    Options
	keys    keyMap
	help    help.Model
	styles  styles
	logger  *logger.Logger

	mode         Mode
	deleteTarget string
	err          error

	width  int
	height int

	selection *session.Selection
}

// Launch runs the TUI until the user selects a command or quits. The
// selection is nil when the user quit.
func Launch(sess *session.Session, opts Options) (*session.Selection, error) {
	log := logger.GetLogger().TUI().WithSessionID(sess.ID())
	log.Debug().Msg("Starting TUI")

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	program := tea.NewProgram(newModel(sess, opts), tea.WithAltScreen(), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return nil, errors.Wrap(err, "TUI execution failed")
	}

	m, ok := final.(model)
	if !ok {
		return nil, errors.Newf("unexpected model type %T", final)
	}
	return m.selection, nil
}

func newModel(sess *session.Session, opts Options) model {
	h := help.New()
	h.ShowAll = false

	return model{
		session: sess,
		opts:    opts,
		keys:    keys,
		help:    h,
		styles:  newStyles(output.Flavor(opts.Theme)),
		logger:  logger.GetLogger().TUI().WithSessionID(sess.ID()),
		mode:    ModeSearch,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.session.SetPageCapacity(m.pageCapacity())
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeDeleteConfirm {
			return m.handleDeleteConfirmKeys(msg)
		}
		return m.handleSearchKeys(msg)
	}

	return m, nil
}

func (m model) pageCapacity() int {
	if m.opts.PageSize > 0 {
		return m.opts.PageSize
	}
	return m.height - m.opts.ChromeRows
}

func (m model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		for _, r := range msg.Runes {
			if _, err := m.session.Handle(session.Char(r)); err != nil {
				m.err = err
			}
		}
		return m, nil
	}

	for _, b := range bindings {
		if !key.Matches(msg, b.binding) {
			continue
		}

		outcome, err := m.session.Handle(session.Press(b.key))
		if err != nil {
			m.logger.Warn().Err(err).Msg("Key handling failed")
			m.err = err
		}
		if outcome.ConfirmDelete != "" {
			m.mode = ModeDeleteConfirm
			m.deleteTarget = outcome.ConfirmDelete
		}
		if outcome.Done {
			m.selection = outcome.Selection
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleDeleteConfirmKeys deletes on y and cancels on any other key
func (m model) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.deleteTarget
	m.mode = ModeSearch
	m.deleteTarget = ""

	if msg.String() == "y" || msg.String() == "Y" {
		if err := m.session.Delete(target); err != nil {
			m.logger.WithError(err).Error().Str("command", target).Msg("Deletion failed")
			m.err = err
		}
	}
	return m, nil
}

func (m model) View() string {
	snap := m.session.Snapshot()

	lines := make([]string, 0, len(snap.Rows)+3)
	lines = append(lines, m.renderQuery(snap))
	if m.opts.ChromeRows >= 2 {
		lines = append(lines, m.renderMessage())
	}
	if m.opts.ChromeRows >= 3 {
		lines = append(lines, m.styles.status.Render(m.truncate(snap.Status())))
	}
	for _, row := range snap.Rows {
		lines = append(lines, m.renderRow(row))
	}
	return strings.Join(lines, "\n")
}

// renderMessage is the line under the query: the deletion prompt, the last
// error, or the key help.
func (m model) renderMessage() string {
	switch {
	case m.mode == ModeDeleteConfirm:
		return m.styles.confirm.Render(m.truncate(
			fmt.Sprintf("Do you want to delete all occurrences of %s? y/n", m.deleteTarget)))
	case m.err != nil:
		return m.styles.err.Render(m.truncate(m.err.Error()))
	case m.opts.ShowHelp:
		return m.styles.help.Render(m.help.View(m.keys))
	default:
		return ""
	}
}

// truncate cuts s to the terminal width.
func (m model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.width, "")
}

// Package session drives one interactive search: it turns keystrokes into
// edits of the query, re-filters the active view and moves the highlight.
package session

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/NeverVane/hsb/internal/logger"
	"github.com/NeverVane/hsb/internal/pager"
	"github.com/NeverVane/hsb/internal/query"
	"github.com/NeverVane/hsb/internal/search"
	"github.com/NeverVane/hsb/internal/views"
	"github.com/NeverVane/hsb/pkg/history"
)

// HistoryStore is where raw history comes from and where deletions go.
type HistoryStore interface {
	Load() ([]string, error)
	Remove(cmd string) error
}

// FavoritesStore persists the favorites list.
type FavoritesStore interface {
	Load() ([]string, error)
	Save(favorites []string) error
}

// Options is the configuration a session starts from. Everything the
// session needs from the environment is captured here.
type Options struct {
	Shell         history.Shell
	Prompt        string
	InitialQuery  string
	Mode          search.Mode
	CaseSensitive bool
	View          views.View
	PageCapacity  int
}

// Session is the state of one interactive search.
type Session struct {
	id            string
	prompt        string
	state         *views.State
	editor        *query.Editor
	pager         *pager.Paginator
	mode          search.Mode
	caseSensitive bool
	matcher       search.Matcher
	history       HistoryStore
	favorites     FavoritesStore
	logger        *logger.Logger
}

// New loads history and favorites and applies the initial query.
func New(opts Options, historyStore HistoryStore, favoritesStore FavoritesStore) (*Session, error) {
	raw, err := historyStore.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load history")
	}
	favorites, err := favoritesStore.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load favorites")
	}

	id := uuid.NewString()
	s := &Session{
		id:            id,
		prompt:        opts.Prompt,
		state:         views.New(raw, favorites, favoritesStore),
		editor:        query.NewEditor(opts.InitialQuery),
		pager:         pager.New(opts.PageCapacity),
		mode:          opts.Mode,
		caseSensitive: opts.CaseSensitive,
		history:       historyStore,
		favorites:     favoritesStore,
		logger:        logger.GetLogger().Session().WithSessionID(id),
	}
	s.state.SetView(opts.View)
	s.refilter()

	s.logger.Debug().
		Str("shell", opts.Shell.String()).
		Int("history_entries", len(raw)).
		Int("favorites", len(favorites)).
		Str("mode", s.mode.String()).
		Str("view", s.state.View().String()).
		Msg("Session started")

	return s, nil
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Query returns the current query text.
func (s *Session) Query() string {
	return s.editor.Text()
}

// Active returns the filtered list of the current view.
func (s *Session) Active() []string {
	return s.state.Active()
}

// Selected returns the highlighted command.
func (s *Session) Selected() (string, bool) {
	return s.pager.Selected(s.state.Active())
}

// SetPageCapacity adapts to a new terminal height.
func (s *Session) SetPageCapacity(capacity int) {
	s.pager.SetCapacity(capacity)
	s.pager.Clamp(s.state.Active())
}

// Handle applies one event. Errors come from persisting favorites and
// leave the in-memory state usable.
func (s *Session) Handle(ev Event) (Outcome, error) {
	active := s.state.Active()

	switch ev.Key {
	case KeyChar:
		s.editor.Type(ev.Char)
		s.refilter()
	case KeyBackspace:
		s.editor.Backspace()
		s.refilter()
	case KeyCursorLeft:
		s.editor.MoveCursor(-1)
	case KeyCursorRight:
		s.editor.MoveCursor(1)
	case KeyUp:
		s.pager.MoveHighlighted(active, pager.Backward)
	case KeyDown:
		s.pager.MoveHighlighted(active, pager.Forward)
	case KeyPageUp:
		s.pager.TurnPage(active, pager.Backward)
		s.pager.Clamp(active)
	case KeyPageDown:
		s.pager.TurnPage(active, pager.Forward)
		s.pager.Clamp(active)
	case KeyToggleMode:
		s.mode = s.mode.Next()
		s.refilter()
	case KeyToggleCase:
		s.caseSensitive = !s.caseSensitive
		s.refilter()
	case KeyToggleView:
		s.state.ToggleView()
		s.refilter()
	case KeyToggleFavorite:
		return Outcome{}, s.toggleFavorite()
	case KeyDeleteEntry:
		if cmd, ok := s.Selected(); ok {
			return Outcome{ConfirmDelete: cmd}, nil
		}
	case KeyAccept, KeyAcceptNoNewline:
		cmd, ok := s.Selected()
		if !ok {
			s.logger.Debug().Msg("Nothing selected")
			return Outcome{}, nil
		}
		s.logger.Info().Str("command", cmd).Bool("execute", ev.Key == KeyAccept).Msg("Command selected")
		return Outcome{Done: true, Selection: &Selection{Command: cmd, Execute: ev.Key == KeyAccept}}, nil
	case KeyCancel:
		s.logger.Debug().Msg("Session cancelled")
		return Outcome{Done: true}, nil
	}

	return Outcome{}, nil
}

func (s *Session) toggleFavorite() error {
	cmd, ok := s.Selected()
	if !ok {
		return nil
	}

	inFavorites := s.state.View() == views.Favorites
	if inFavorites {
		// the highlighted row is about to leave the list
		s.pager.RetainSelection(s.state.Active())
	}
	added := s.state.ToggleFavorite(cmd)
	if inFavorites {
		s.pager.Clamp(s.state.Active())
	}

	s.logger.Debug().Str("command", cmd).Bool("added", added).Msg("Favorite toggled")

	if err := s.favorites.Save(s.state.Favorites()); err != nil {
		return errors.Wrap(err, "failed to save favorites")
	}
	return nil
}

// Delete removes every occurrence of cmd from the history and the
// favorites, persists both, and rebuilds all views. The in-memory state is
// updated even when persisting fails.
func (s *Session) Delete(cmd string) error {
	wasFavorite := s.state.IsFavorite(cmd)
	s.state.Delete(cmd)

	var errs error
	if err := s.history.Remove(cmd); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "failed to remove command from history"))
	}
	saved := true
	if wasFavorite {
		if err := s.favorites.Save(s.state.Favorites()); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrap(err, "failed to save favorites"))
			saved = false
		}
	}
	if saved {
		if err := s.state.Reload(); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrap(err, "failed to reload favorites"))
		}
	} else {
		// the file still lists cmd; keep the favorites held in memory
		s.state.Rebuild()
	}
	s.refilter()

	s.logger.Info().Str("command", cmd).Bool("was_favorite", wasFavorite).Msg("Command deleted")
	return errs
}

// refilter applies the query to the current view's restore point and
// returns to the top of the first page.
func (s *Session) refilter() {
	s.matcher = search.NewMatcher(s.editor.Text(), s.mode, s.caseSensitive)
	s.state.Filter(func(candidates []string) []string {
		return search.FilterWith(candidates, s.matcher)
	})
	s.pager.Reset()
}

// Package views keeps the sorted, favorites and all command lists together
// with the unfiltered baseline that searches start from.
package views

import (
	"slices"

	"github.com/NeverVane/hsb/pkg/history"
)

// FavoritesSource supplies the persisted favorites on reload.
type FavoritesSource interface {
	Load() ([]string, error)
}

// State owns the raw history and two command sets: the working set shown
// to the user and the restore point every search is applied to.
type State struct {
	raw          []string
	working      CommandSet
	restorePoint CommandSet
	view         View
	favorites    FavoritesSource
}

// New builds the three views from raw history and the given favorites.
func New(raw []string, favorites []string, source FavoritesSource) *State {
	s := &State{
		raw:       slices.Clone(raw),
		view:      Sorted,
		favorites: source,
	}
	s.rebuild(favorites)
	return s
}

func (s *State) rebuild(favorites []string) {
	s.restorePoint = CommandSet{
		Sorted:    history.Rank(s.raw),
		Favorites: slices.Clone(favorites),
		All:       dedup(s.raw),
	}
	s.working = s.restorePoint.Clone()
}

// View returns the current view.
func (s *State) View() View {
	return s.view
}

// SetView switches the current view.
func (s *State) SetView(v View) {
	s.view = v
}

// ToggleView advances to the next view and returns it.
func (s *State) ToggleView() View {
	s.view = s.view.Next()
	return s.view
}

// Active is the working list of the current view. Callers must not
// modify it.
func (s *State) Active() []string {
	return s.working[s.view]
}

// Raw returns the raw history.
func (s *State) Raw() []string {
	return s.raw
}

// Filter replaces the working list of the current view with filter applied
// to its restore point.
func (s *State) Filter(filter func([]string) []string) {
	s.working[s.view] = filter(slices.Clone(s.restorePoint[s.view]))
}

// IsFavorite reports whether cmd is a favorite, regardless of any active
// filter.
func (s *State) IsFavorite(cmd string) bool {
	return slices.Contains(s.restorePoint[Favorites], cmd)
}

// Favorites returns the full favorites list, suitable for persisting.
func (s *State) Favorites() []string {
	return slices.Clone(s.restorePoint[Favorites])
}

// ToggleFavorite adds cmd to the favorites or removes every occurrence of
// it. Both command sets are updated. It reports whether cmd is a favorite
// afterwards.
func (s *State) ToggleFavorite(cmd string) bool {
	if s.IsFavorite(cmd) {
		s.restorePoint[Favorites] = removeAll(s.restorePoint[Favorites], cmd)
		s.working[Favorites] = removeAll(s.working[Favorites], cmd)
		return false
	}
	s.restorePoint[Favorites] = append(s.restorePoint[Favorites], cmd)
	s.working[Favorites] = append(s.working[Favorites], cmd)
	return true
}

// Delete removes every occurrence of cmd from the raw history and from all
// views of both command sets.
func (s *State) Delete(cmd string) {
	s.raw = removeAll(s.raw, cmd)
	s.working.remove(cmd)
	s.restorePoint.remove(cmd)
}

// Reload rebuilds every view from the raw history and the favorites
// source. Any active filter is dropped. When the favorites cannot be read
// the current favorites are kept and the error is returned.
func (s *State) Reload() error {
	favorites := s.restorePoint[Favorites]
	var err error
	if s.favorites != nil {
		var loaded []string
		if loaded, err = s.favorites.Load(); err == nil {
			favorites = loaded
		}
	}
	s.rebuild(favorites)
	return err
}

// Rebuild recomputes every view from the raw history and the favorites
// held in memory, without reading the favorites source.
func (s *State) Rebuild() {
	s.rebuild(s.Favorites())
}

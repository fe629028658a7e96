// Package favorites persists the favorite commands as a flat file with one
// command per line.
package favorites

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/NeverVane/hsb/pkg/history"
)

const lockTimeout = 2 * time.Second

// Store reads and writes a favorites file.
type Store struct {
	Path string
}

// NewStore returns a store for the given file.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// DefaultPath is the favorites file of a shell inside dir, for example
// ~/.config/hsb/.zsh_favorites.
func DefaultPath(dir string, shell history.Shell) string {
	return filepath.Join(dir, "."+shell.String()+"_favorites")
}

// Load returns the favorites in file order. A missing file holds no
// favorites.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read favorites file %s", s.Path)
	}

	lines := strings.Split(string(data), "\n")
	favorites := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			favorites = append(favorites, line)
		}
	}
	return favorites, nil
}

// Save replaces the file with favorites, one per line.
func (s *Store) Save(favorites []string) error {
	lock, err := NewFileLock(s.Path+".lock", lockTimeout)
	if err != nil {
		return err
	}
	if err := lock.Lock(context.Background()); err != nil {
		return err
	}
	defer lock.Unlock()

	var b strings.Builder
	for _, cmd := range favorites {
		b.WriteString(cmd)
		b.WriteByte('\n')
	}
	return history.WriteFileAtomic(s.Path, []byte(b.String()), 0o600)
}

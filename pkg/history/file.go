package history

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// File is a shell history file on disk.
type File struct {
	Path  string
	Shell Shell
}

// NewFile returns a history file handle for the given shell.
func NewFile(path string, shell Shell) *File {
	return &File{Path: path, Shell: shell}
}

// Load reads and decodes the history file. A missing file is an empty
// history.
func (f *File) Load() ([]string, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read history file %s", f.Path)
	}
	return DecoderFor(f.Shell).Decode(raw), nil
}

// Remove rewrites the history file without any line whose command equals
// cmd. In bash histories the timestamp line written above a removed
// command goes with it. Kept lines are written back byte for byte, so timestamps and
// metafication survive. The file is replaced atomically.
func (f *File) Remove(cmd string) error {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read history file %s", f.Path)
	}

	decoder := DecoderFor(f.Shell)
	lines := bytes.SplitAfter(raw, []byte{'\n'})
	kept := make([]byte, 0, len(raw))
	removed := 0
	// start in kept of a bash timestamp line directly above the current line
	stamp := -1
	for _, line := range lines {
		text := bytes.TrimSuffix(line, []byte{'\n'})
		if decoded, ok := decoder.DecodeLine(text); ok && decoded == cmd {
			removed++
			if stamp >= 0 {
				kept = kept[:stamp]
			}
			stamp = -1
			continue
		}

		stamp = -1
		if f.Shell != Zsh && isBashTimestamp(text) {
			stamp = len(kept)
		}
		kept = append(kept, line...)
	}
	if removed == 0 {
		return nil
	}

	mode := fs.FileMode(0o600)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}
	return WriteFileAtomic(f.Path, kept, mode)
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place.
func WriteFileAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to set permissions on %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}

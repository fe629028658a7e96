package history

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedShell is returned for shells whose history format is unknown.
var ErrUnsupportedShell = errors.New("unsupported shell")

// Shell identifies a supported shell and with it a history file format.
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
)

// ParseShell accepts a shell name or a path to a shell binary.
func ParseShell(name string) (Shell, error) {
	switch strings.ToLower(filepath.Base(strings.TrimSpace(name))) {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedShell, "%q (supported: bash, zsh)", name)
	}
}

func (s Shell) String() string {
	return string(s)
}

// DetectHistoryFile resolves the history file for a shell. An explicit
// histfile (usually $HISTFILE) wins; otherwise the first existing default
// location under home is used, falling back to the primary default.
func DetectHistoryFile(shell Shell, home, histfile string) (string, error) {
	if histfile != "" {
		return histfile, nil
	}
	if home == "" {
		return "", errors.New("cannot locate history file: home directory unknown")
	}

	var candidates []string
	switch shell {
	case Bash:
		candidates = []string{
			filepath.Join(home, ".bash_history"),
			filepath.Join(home, ".bashrc_history"),
		}
	case Zsh:
		candidates = []string{
			filepath.Join(home, ".zsh_history"),
			filepath.Join(home, ".zhistory"),
		}
	default:
		return "", errors.Wrapf(ErrUnsupportedShell, "%q (supported: bash, zsh)", string(shell))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return candidates[0], nil
}

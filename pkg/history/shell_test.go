package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShell(t *testing.T) {
	tests := []struct {
		input string
		want  Shell
	}{
		{"bash", Bash},
		{"zsh", Zsh},
		{"ZSH", Zsh},
		{"/bin/bash", Bash},
		{"/usr/local/bin/zsh", Zsh},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShell(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := ParseShell("/usr/bin/fish")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedShell)
		assert.Contains(t, err.Error(), "fish")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseShell("")
		assert.ErrorIs(t, err, ErrUnsupportedShell)
	})
}

func TestDetectHistoryFile(t *testing.T) {
	home := t.TempDir()

	t.Run("histfile wins", func(t *testing.T) {
		path, err := DetectHistoryFile(Bash, home, "/custom/history")
		require.NoError(t, err)
		assert.Equal(t, "/custom/history", path)
	})

	t.Run("default when nothing exists", func(t *testing.T) {
		path, err := DetectHistoryFile(Zsh, home, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".zsh_history"), path)
	})

	t.Run("existing alternative", func(t *testing.T) {
		alt := filepath.Join(home, ".zhistory")
		require.NoError(t, os.WriteFile(alt, []byte("ls\n"), 0600))

		path, err := DetectHistoryFile(Zsh, home, "")
		require.NoError(t, err)
		assert.Equal(t, alt, path)
	})

	t.Run("unsupported shell", func(t *testing.T) {
		_, err := DetectHistoryFile(Shell("fish"), home, "")
		assert.ErrorIs(t, err, ErrUnsupportedShell)
	})

	t.Run("no home", func(t *testing.T) {
		_, err := DetectHistoryFile(Bash, "", "")
		assert.Error(t, err)
	})
}

package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFileLoad(t *testing.T) {
	t.Run("bash", func(t *testing.T) {
		path := writeHistory(t, "ls -la\ncd /tmp\nls -la\n")
		commands, err := NewFile(path, Bash).Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"ls -la", "cd /tmp", "ls -la"}, commands)
	})

	t.Run("zsh", func(t *testing.T) {
		path := writeHistory(t, ": 1612345678:0;ls -la\n: 1612345679:0;cd /tmp\n")
		commands, err := NewFile(path, Zsh).Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"ls -la", "cd /tmp"}, commands)
	})

	t.Run("missing file", func(t *testing.T) {
		commands, err := NewFile(filepath.Join(t.TempDir(), "nope"), Bash).Load()
		require.NoError(t, err)
		assert.Empty(t, commands)
	})

	t.Run("unreadable path", func(t *testing.T) {
		_, err := NewFile(t.TempDir(), Bash).Load()
		assert.Error(t, err)
	})
}

func TestFileRemove(t *testing.T) {
	t.Run("bash removes every occurrence", func(t *testing.T) {
		path := writeHistory(t, "ls -la\ncd /tmp\nls -la\nmake\n")
		file := NewFile(path, Bash)

		require.NoError(t, file.Remove("ls -la"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "cd /tmp\nmake\n", string(data))
	})

	t.Run("zsh keeps raw bytes of other lines", func(t *testing.T) {
		content := ": 1612345678:0;ls\n: 1612345679:0;echo \xc5\x83\x81ampion\n: 1612345680:0;ls\n"
		path := writeHistory(t, content)
		file := NewFile(path, Zsh)

		require.NoError(t, file.Remove("ls"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ": 1612345679:0;echo \xc5\x83\x81ampion\n", string(data))

		commands, err := file.Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"echo šampion"}, commands)
	})

	t.Run("bash drops the timestamp of a removed command", func(t *testing.T) {
		path := writeHistory(t, "#1612345678\nls -la\n#1612345679\ncd /tmp\n#1612345680\nls -la\nmake\n")
		file := NewFile(path, Bash)

		require.NoError(t, file.Remove("ls -la"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "#1612345679\ncd /tmp\nmake\n", string(data))

		commands, err := file.Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"cd /tmp", "make"}, commands)
	})

	t.Run("bash keeps a timestamp not directly above", func(t *testing.T) {
		path := writeHistory(t, "#1612345678\ncd /tmp\nls -la\n")
		require.NoError(t, NewFile(path, Bash).Remove("ls -la"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "#1612345678\ncd /tmp\n", string(data))
	})

	t.Run("unknown command leaves file alone", func(t *testing.T) {
		path := writeHistory(t, "a\nb\n")
		require.NoError(t, NewFile(path, Bash).Remove("c"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n", string(data))
	})

	t.Run("keeps permissions", func(t *testing.T) {
		path := writeHistory(t, "a\nb\n")
		require.NoError(t, os.Chmod(path, 0640))
		require.NoError(t, NewFile(path, Bash).Remove("a"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	})

	t.Run("missing file", func(t *testing.T) {
		assert.NoError(t, NewFile(filepath.Join(t.TempDir(), "nope"), Bash).Remove("a"))
	})
}

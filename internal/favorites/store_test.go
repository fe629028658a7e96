package favorites

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeverVane/hsb/pkg/history"
)

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "/home/bwk/.config/hsb/.zsh_favorites", DefaultPath("/home/bwk/.config/hsb", history.Zsh))
	assert.Equal(t, "/cfg/.bash_favorites", DefaultPath("/cfg", history.Bash))
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "hsb", ".bash_favorites"))

	t.Run("missing file", func(t *testing.T) {
		favorites, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})

	t.Run("save then load", func(t *testing.T) {
		want := []string{"git push origin master", "echo šampion", "make -j4"}
		require.NoError(t, store.Save(want))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)

		data, err := os.ReadFile(store.Path)
		require.NoError(t, err)
		assert.Equal(t, "git push origin master\necho šampion\nmake -j4\n", string(data))
	})

	t.Run("save empty", func(t *testing.T) {
		require.NoError(t, store.Save(nil))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("blank lines ignored", func(t *testing.T) {
		require.NoError(t, os.WriteFile(store.Path, []byte("a\n\nb"), 0600))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("unreadable", func(t *testing.T) {
		_, err := NewStore(dir).Load()
		assert.Error(t, err)
	})
}

func TestFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.lock")

	first, err := NewFileLock(path, time.Second)
	require.NoError(t, err)
	require.NoError(t, first.Lock(context.Background()))
	assert.True(t, first.IsLocked())

	second, err := NewFileLock(path, 100*time.Millisecond)
	require.NoError(t, err)
	err = second.Lock(context.Background())
	assert.ErrorIs(t, err, ErrLocked)
	assert.False(t, second.IsLocked())

	require.NoError(t, first.Unlock())
	assert.False(t, first.IsLocked())
	require.NoError(t, second.Lock(context.Background()))
	require.NoError(t, second.Unlock())

	// Unlocking twice is harmless.
	assert.NoError(t, second.Unlock())
}

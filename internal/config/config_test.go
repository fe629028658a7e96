package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/hsb-test")

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/tmp/hsb-test", cfg.ConfigDir)
	assert.Equal(t, "/tmp/hsb-test", cfg.Favorites.Dir)
	assert.Equal(t, "exact", cfg.Search.Mode)
	assert.Equal(t, "sorted", cfg.Search.View)
	assert.Equal(t, 3, cfg.TUI.ChromeRows)
	assert.Equal(t, "inject", cfg.Output.Mode)
	assert.Equal(t, filepath.Join("/tmp/hsb-test", "hsb.log"), cfg.Log.Output)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Search, cfg.Search)
	})

	t.Run("partial file", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		content := `
[shell]
name = "zsh"

[search]
mode = "fuzzy"
case_sensitive = true

[tui]
theme = "latte"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "zsh", cfg.Shell.Name)
		assert.Equal(t, "fuzzy", cfg.Search.Mode)
		assert.True(t, cfg.Search.CaseSensitive)
		assert.Equal(t, "sorted", cfg.Search.View)
		assert.Equal(t, "latte", cfg.TUI.Theme)
		assert.Equal(t, "inject", cfg.Output.Mode)
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[search]\nmode = \"glob\"\n"), 0600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search.mode")
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(path, []byte("[search\n"), 0600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	cfg := DefaultConfig()
	cfg.Output.Mode = "clipboard"
	cfg.TUI.PageSize = 20

	path := filepath.Join(dir, "nested", "config.toml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "clipboard", loaded.Output.Mode)
	assert.Equal(t, 20, loaded.TUI.PageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad view", func(c *Config) { c.Search.View = "recent" }, "search.view"},
		{"bad shell", func(c *Config) { c.Shell.Name = "fish" }, "shell.name"},
		{"bad theme", func(c *Config) { c.TUI.Theme = "dracula" }, "tui.theme"},
		{"negative chrome", func(c *Config) { c.TUI.ChromeRows = -1 }, "tui.chrome_rows"},
		{"bad output", func(c *Config) { c.Output.Mode = "pipe" }, "output.mode"},
		{"file mode without file", func(c *Config) {
			c.Output.Mode = "file"
			c.Output.File = ""
		}, "output.file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
		Favorites: FavoritesConfig{Dir: filepath.Join(dir, "favorites")},
	}
	require.NoError(t, cfg.EnsureDirectories())

	for _, sub := range []string{"config", "data", "favorites"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

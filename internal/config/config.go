package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/NeverVane/hsb/internal/logger"
	"github.com/NeverVane/hsb/internal/search"
	"github.com/NeverVane/hsb/internal/views"
)

// EnvConfigDir overrides the configuration and data directories.
const EnvConfigDir = "HSB_CONFIG_DIR"

// Output modes understood by the replay layer.
var OutputModes = []string{"inject", "file", "stdout", "clipboard"}

// Catppuccin flavors usable as TUI themes.
var Themes = []string{"latte", "frappe", "macchiato", "mocha"}

// Config represents the complete configuration for hsb
type Config struct {
	// Shell and history file selection
	Shell ShellConfig `toml:"shell"`

	// Favorites storage
	Favorites FavoritesConfig `toml:"favorites"`

	// Initial search settings of a session
	Search SearchConfig `toml:"search"`

	// TUI configuration
	TUI TUIConfig `toml:"tui"`

	// How the chosen command is handed back to the shell
	Output OutputConfig `toml:"output"`

	// Logging
	Log logger.Config `toml:"log"`

	// Directory paths (computed, not stored in TOML)
	DataDir   string `toml:"-"`
	ConfigDir string `toml:"-"`
}

// ShellConfig selects the shell whose history is searched
type ShellConfig struct {
	// bash or zsh; empty means detect from $SHELL
	Name string `toml:"name"`

	// History file; empty means $HISTFILE or the shell's default
	HistoryFile string `toml:"history_file"`
}

// FavoritesConfig contains favorites storage settings
type FavoritesConfig struct {
	// Directory holding .<shell>_favorites files
	Dir string `toml:"dir"`
}

// SearchConfig holds the state a session starts in
type SearchConfig struct {
	// exact, regex or fuzzy
	Mode string `toml:"mode"`

	CaseSensitive bool `toml:"case_sensitive"`

	// sorted, favorites or all
	View string `toml:"view"`
}

// TUIConfig contains terminal UI settings
type TUIConfig struct {
	// Catppuccin flavor: latte, frappe, macchiato, mocha
	Theme string `toml:"theme"`

	// Rows above the command list (query, help, status)
	ChromeRows int `toml:"chrome_rows"`

	// Show the key help line
	ShowHelp bool `toml:"show_help"`

	// Fixed rows per page; 0 fits the terminal height
	PageSize int `toml:"page_size"`
}

// OutputConfig selects how a selection is replayed
type OutputConfig struct {
	// inject, file, stdout or clipboard
	Mode string `toml:"mode"`

	// Target of the file mode, read by the shell widget
	File string `toml:"file"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	configDir, dataDir := defaultDirs()

	logConfig := logger.DefaultConfig()
	logConfig.Output = filepath.Join(dataDir, "hsb.log")
	logConfig.Color = false

	return &Config{
		Favorites: FavoritesConfig{
			Dir: configDir,
		},
		Search: SearchConfig{
			Mode:          search.ModeExact.String(),
			CaseSensitive: false,
			View:          views.Sorted.String(),
		},
		TUI: TUIConfig{
			Theme:      "mocha",
			ChromeRows: 3,
			ShowHelp:   true,
		},
		Output: OutputConfig{
			Mode: "inject",
			File: filepath.Join(os.TempDir(), "hsb_selected_command"),
		},
		Log:       *logConfig,
		DataDir:   dataDir,
		ConfigDir: configDir,
	}
}

func defaultDirs() (configDir, dataDir string) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "hsb"),
		filepath.Join(homeDir, ".local", "share", "hsb")
}

// DefaultPath is the config file location used when none is given
func DefaultPath() string {
	configDir, _ := defaultDirs()
	return filepath.Join(configDir, "config.toml")
}

// Load reads the configuration file, falling back to defaults when it does
// not exist
func Load(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = DefaultPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config.ApplyDefaults()
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", configPath)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return config, nil
}

// Save writes the configuration as TOML
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	file, err := os.Create(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return errors.Wrap(err, "failed to encode config as TOML")
	}
	return nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if _, err := search.ParseMode(c.Search.Mode); err != nil {
		return errors.Wrap(err, "search.mode")
	}
	if _, err := views.ParseView(c.Search.View); err != nil {
		return errors.Wrap(err, "search.view")
	}
	if c.Shell.Name != "" && c.Shell.Name != "bash" && c.Shell.Name != "zsh" {
		return errors.Newf("shell.name must be bash or zsh, got %q", c.Shell.Name)
	}
	if !slices.Contains(Themes, c.TUI.Theme) {
		return errors.Newf("tui.theme must be one of %v, got %q", Themes, c.TUI.Theme)
	}
	if c.TUI.ChromeRows < 0 {
		return errors.New("tui.chrome_rows must be non-negative")
	}
	if c.TUI.PageSize < 0 {
		return errors.New("tui.page_size must be non-negative")
	}
	if !slices.Contains(OutputModes, c.Output.Mode) {
		return errors.Newf("output.mode must be one of %v, got %q", OutputModes, c.Output.Mode)
	}
	if c.Output.Mode == "file" && c.Output.File == "" {
		return errors.New("output.file is required when output.mode is file")
	}
	return nil
}

// EnsureDirectories creates the directories hsb writes into
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.ConfigDir, c.DataDir, c.Favorites.Dir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}
	return nil
}

// ApplyDefaults fills in values a partial config file left empty
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.Favorites.Dir == "" {
		c.Favorites.Dir = defaults.Favorites.Dir
	}
	if c.Search.Mode == "" {
		c.Search.Mode = defaults.Search.Mode
	}
	if c.Search.View == "" {
		c.Search.View = defaults.Search.View
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ChromeRows == 0 {
		c.TUI.ChromeRows = defaults.TUI.ChromeRows
	}
	if c.Output.Mode == "" {
		c.Output.Mode = defaults.Output.Mode
	}
	if c.Output.File == "" {
		c.Output.File = defaults.Output.File
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Output == "" {
		c.Log.Output = defaults.Log.Output
	}
}

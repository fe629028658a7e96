package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/NeverVane/hsb/internal/config"
	"github.com/NeverVane/hsb/internal/favorites"
	"github.com/NeverVane/hsb/internal/logger"
	"github.com/NeverVane/hsb/internal/output"
	"github.com/NeverVane/hsb/internal/replay"
	"github.com/NeverVane/hsb/internal/search"
	"github.com/NeverVane/hsb/internal/session"
	"github.com/NeverVane/hsb/internal/shell"
	"github.com/NeverVane/hsb/internal/tui"
	"github.com/NeverVane/hsb/internal/views"
	"github.com/NeverVane/hsb/pkg/history"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "hsb encountered a fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configPath    string
	verbose       bool
	noColor       bool
	shell         string
	mode          string
	caseSensitive bool
	view          string
	output        string
}

// app holds what PersistentPreRunE resolved for the commands
type app struct {
	flags     globalFlags
	cfg       *config.Config
	formatter *output.Formatter
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "hsb [query]",
		Short: "Interactive shell history search",
		Long: heredoc.Doc(`
			hsb searches your bash or zsh history interactively.

			Commands are shown ranked by how often you ran them, with the most
			recent first among equals. Switch to your favorites or to the full
			history, search by exact text, regex or fuzzy subsequence, and put
			the chosen command back on your prompt.

			Hook it into your shell with:

			  eval "$(hsb show-config bash)"
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			return a.fail(a.runInteractive(query))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "Path to config file (default "+config.DefaultPath()+")")
	flags.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&a.flags.shell, "shell", "", "Shell whose history is searched (bash or zsh)")
	flags.StringVar(&a.flags.mode, "mode", "", "Search mode: exact, regex or fuzzy")
	flags.BoolVar(&a.flags.caseSensitive, "case-sensitive", false, "Match case when searching")
	flags.StringVar(&a.flags.view, "view", "", "Initial view: sorted, favorites or all")
	flags.StringVar(&a.flags.output, "output", "", "Where the selection goes: inject, file, stdout or clipboard")

	cmd.AddCommand(showConfigCmd(a))
	cmd.AddCommand(rankCmd(a))
	cmd.AddCommand(searchCmd(a))
	cmd.AddCommand(favCmd(a))
	cmd.AddCommand(deleteCmd(a))
	cmd.AddCommand(versionCmd(a))

	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

// init loads the configuration, applies flag overrides and starts logging
func (a *app) init() error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return err
	}

	if a.flags.mode != "" {
		cfg.Search.Mode = a.flags.mode
	}
	if a.flags.caseSensitive {
		cfg.Search.CaseSensitive = true
	}
	if a.flags.view != "" {
		cfg.Search.View = a.flags.view
	}
	if a.flags.output != "" {
		cfg.Output.Mode = a.flags.output
	}
	if a.flags.shell != "" {
		cfg.Shell.Name = a.flags.shell
	}

	a.cfg = cfg
	a.formatter = output.NewFormatter(cfg.TUI.Theme, a.flags.noColor)

	if err := cfg.EnsureDirectories(); err != nil {
		a.formatter.Error("%v", err)
		return err
	}

	if err := logger.Init(&cfg.Log); err != nil {
		a.formatter.Error("Failed to initialize logger: %v", err)
		return err
	}
	if a.flags.verbose {
		logger.SetLevel(zerolog.DebugLevel)
	}

	logger.GetLogger().Config().Debug().
		Str("mode", cfg.Search.Mode).
		Str("view", cfg.Search.View).
		Str("output", cfg.Output.Mode).
		Msg("Configuration loaded")

	return nil
}

// fail reports err through the formatter and passes it on
func (a *app) fail(err error) error {
	if err != nil {
		a.formatter.Error("%v", err)
		logger.Error().Err(err).Msg("Command failed")
	}
	return err
}

// resolveShell picks the shell from the flags or config, then from $SHELL
func (a *app) resolveShell() (history.Shell, error) {
	name := a.cfg.Shell.Name
	if name == "" {
		name = os.Getenv("SHELL")
	}
	if name == "" {
		return "", errors.New("cannot detect the shell; pass --shell bash or --shell zsh")
	}
	return history.ParseShell(name)
}

// stores opens the history file and favorites store of the resolved shell
func (a *app) stores() (history.Shell, *history.File, *favorites.Store, error) {
	sh, err := a.resolveShell()
	if err != nil {
		return "", nil, nil, err
	}

	histfile := a.cfg.Shell.HistoryFile
	if histfile == "" {
		histfile = os.Getenv("HISTFILE")
	}
	home, _ := os.UserHomeDir()
	path, err := history.DetectHistoryFile(sh, home, histfile)
	if err != nil {
		return "", nil, nil, err
	}

	logger.Debug().
		Str("shell", sh.String()).
		Str("history", path).
		Msg("Resolved history file")

	store := favorites.NewStore(favorites.DefaultPath(a.cfg.Favorites.Dir, sh))
	return sh, history.NewFile(path, sh), store, nil
}

// newSession builds a session from the configuration and the given query
func (a *app) newSession(query string) (*session.Session, error) {
	sh, hist, favs, err := a.stores()
	if err != nil {
		return nil, err
	}

	mode, err := search.ParseMode(a.cfg.Search.Mode)
	if err != nil {
		return nil, err
	}
	view, err := views.ParseView(a.cfg.Search.View)
	if err != nil {
		return nil, err
	}

	capacity := a.cfg.TUI.PageSize
	if capacity <= 0 {
		capacity = 1
	}

	return session.New(session.Options{
		Shell:         sh,
		Prompt:        shell.Prompt(shell.CurrentUser(), shell.Hostname()),
		InitialQuery:  query,
		Mode:          mode,
		CaseSensitive: a.cfg.Search.CaseSensitive,
		View:          view,
		PageCapacity:  capacity,
	}, hist, favs)
}

func (a *app) runInteractive(query string) error {
	sess, err := a.newSession(query)
	if err != nil {
		return err
	}

	replayer, err := replay.New(a.cfg.Output.Mode, a.cfg.Output.File)
	if err != nil {
		return err
	}

	// stdout carries the selection, so draw on stderr
	opts := tui.Options{
		Theme:      a.cfg.TUI.Theme,
		ChromeRows: a.cfg.TUI.ChromeRows,
		ShowHelp:   a.cfg.TUI.ShowHelp,
		PageSize:   a.cfg.TUI.PageSize,
	}
	if a.cfg.Output.Mode == "stdout" {
		opts.Output = os.Stderr
	}

	selection, err := tui.Launch(sess, opts)
	if err != nil {
		return err
	}
	if selection == nil {
		logger.Debug().Msg("No command selected")
		return nil
	}

	logger.Info().
		Str("command", selection.Command).
		Bool("execute", selection.Execute).
		Str("output", a.cfg.Output.Mode).
		Msg("Replaying selection")

	if err := replayer.Replay(selection.Command, selection.Execute); err != nil {
		return errors.Wrap(err, "failed to replay command")
	}
	return nil
}

// showConfigCmd prints the shell integration snippet
func showConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show-config <bash|zsh>",
		Short: "Print the shell integration snippet",
		Long: heredoc.Doc(`
			Print the code that binds Ctrl-R to hsb and makes the shell write
			its history file after every command.

			Add this to your ~/.bashrc or ~/.zshrc:

			  eval "$(hsb show-config bash)"
			  eval "$(hsb show-config zsh)"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := history.ParseShell(args[0])
			if err != nil {
				return a.fail(err)
			}

			binary, err := os.Executable()
			if err != nil {
				binary = "hsb"
			}

			integration := shell.Integration{
				BinaryPath: binary,
				OutputMode: a.cfg.Output.Mode,
				OutputFile: a.cfg.Output.File,
			}
			snippet, err := integration.Snippet(sh)
			if err != nil {
				return a.fail(err)
			}

			fmt.Fprint(cmd.OutOrStdout(), snippet)
			return nil
		},
	}
}

// rankCmd lists a view without starting the TUI
func rankCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "List the history ranked by frequency",
		Long: heredoc.Doc(`
			List commands the way the interactive view shows them. The sorted
			view ranks by frequency with recency breaking ties; use --view to
			list favorites or the full history instead.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.newSession("")
			if err != nil {
				return a.fail(err)
			}
			a.printCommands(sess.Active(), limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many commands (0 for all)")
	return cmd
}

// searchCmd runs one search and prints the matches
func searchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the commands matching a query",
		Long: heredoc.Doc(`
			Filter the current view with a query and print the matches, one per
			line. Search mode, case sensitivity and view come from the config
			file or the --mode, --case-sensitive and --view flags.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.newSession(args[0])
			if err != nil {
				return a.fail(err)
			}

			matches := sess.Active()
			if len(matches) == 0 {
				logger.Debug().Str("query", args[0]).Msg("No matches")
				return nil
			}
			a.printCommands(matches, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many commands (0 for all)")
	return cmd
}

func (a *app) printCommands(commands []string, limit int) {
	if limit > 0 && len(commands) > limit {
		commands = commands[:limit]
	}
	for _, c := range commands {
		a.formatter.Println(c)
	}
}

// favCmd manages the favorites list outside the TUI
func favCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := a.stores()
			if err != nil {
				return a.fail(err)
			}
			favs, err := store.Load()
			if err != nil {
				return a.fail(err)
			}
			a.printCommands(favs, 0)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <command>",
		Short: "Add a command to the favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			_, _, store, err := a.stores()
			if err != nil {
				return a.fail(err)
			}
			favs, err := store.Load()
			if err != nil {
				return a.fail(err)
			}
			if slices.Contains(favs, command) {
				a.formatter.Info("Already a favorite: %s", command)
				return nil
			}
			if err := store.Save(append(favs, command)); err != nil {
				return a.fail(err)
			}
			a.formatter.Success("Added favorite: %s", command)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <command>",
		Aliases: []string{"remove"},
		Short:   "Remove a command from the favorites",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			_, _, store, err := a.stores()
			if err != nil {
				return a.fail(err)
			}
			favs, err := store.Load()
			if err != nil {
				return a.fail(err)
			}
			if !slices.Contains(favs, command) {
				a.formatter.Warning("Not a favorite: %s", command)
				return nil
			}
			favs = slices.DeleteFunc(favs, func(c string) bool { return c == command })
			if err := store.Save(favs); err != nil {
				return a.fail(err)
			}
			a.formatter.Success("Removed favorite: %s", command)
			return nil
		},
	})

	return cmd
}

// deleteCmd removes every occurrence of a command from history and favorites
func deleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <command>",
		Short: "Delete every occurrence of a command",
		Long: heredoc.Doc(`
			Delete every occurrence of a command from the history file and from
			the favorites. The history file is rewritten in place.
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Do you want to delete all occurrences of %s? y/n ", command)
				var answer string
				fmt.Fscanln(cmd.InOrStdin(), &answer)
				if answer != "y" && answer != "Y" {
					a.formatter.Info("Nothing deleted")
					return nil
				}
			}

			sess, err := a.newSession("")
			if err != nil {
				return a.fail(err)
			}
			if err := sess.Delete(command); err != nil {
				return a.fail(err)
			}
			a.formatter.Success("Deleted %s", command)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// versionCmd displays version information
func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.formatter.Header("hsb " + version)
			a.formatter.Println(fmt.Sprintf("Commit:      %s", commit))
			a.formatter.Println(fmt.Sprintf("Build Date:  %s", date))
			a.formatter.Println(fmt.Sprintf("Config:      %s", configPathOrDefault(a.flags.configPath)))
			a.formatter.Println(fmt.Sprintf("Data:        %s", a.cfg.DataDir))
			return nil
		},
	}
}

func configPathOrDefault(path string) string {
	if path != "" {
		return path
	}
	return config.DefaultPath()
}

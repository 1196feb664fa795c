// Package cmd provides the CLI commands for roster.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wexinc/roster/internal/config"
	rerrors "github.com/wexinc/roster/internal/errors"
	"github.com/wexinc/roster/internal/logging"
	"github.com/wexinc/roster/internal/person"
	"github.com/wexinc/roster/internal/recent"
	"github.com/wexinc/roster/internal/session"
	"github.com/wexinc/roster/internal/tui"
	"github.com/wexinc/roster/internal/view"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "roster",
		Short: "Keep a list of people in a terminal table",
		Long: `roster keeps an in-memory list of people (first name, last name, age)
in a sortable, filterable terminal table.

Lists are loaded from and saved to CSV files. Without a subcommand roster
starts the interactive table; the subcommands work on CSV files directly.

Examples:
  roster                        # Start with an empty table
  roster --file people.csv      # Start with people.csv imported
  roster list people.csv        # Print a file as a table`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	root.PersistentFlags().String("config", "", "Config file (default .roster/config.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	root.Flags().StringP("file", "f", "", "CSV file to import on start")

	root.AddCommand(
		newListCmd(),
		newCheckCmd(),
		newMergeCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// runRoot starts the interactive table.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to the file.
	logCfg := loggingConfig(cfg)
	logCfg.Console = false
	if err := logging.InitGlobal(logCfg); err != nil {
		return fmt.Errorf("failed to start logging: %w", err)
	}
	defer logging.CloseGlobal()

	s, err := newSession(cfg)
	if err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	logging.Info("starting roster", "version", Version, "preload", file)

	opts := []tui.Option{
		tui.WithPreload(file),
		tui.WithDefaultPath(cfg.Files.DefaultPath()),
		tui.WithBaseDir(cfg.Files.DefaultDir),
	}
	if list := loadRecent(); list != nil {
		opts = append(opts, tui.WithRecent(list))
	}
	return tui.Run(s, opts...)
}

// loadRecent returns the user's recent file list, or nil when it cannot be
// read. Remembering files is a convenience and never stops the TUI.
func loadRecent() *recent.List {
	path, err := recent.DefaultPath()
	if err != nil {
		logging.Warn("no home directory for recent files", "error", err)
		return nil
	}
	list, err := recent.Load(path)
	if err != nil {
		logging.Warn("failed to load recent files", "path", path, "error", err)
		return nil
	}
	return list
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("roster {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd, err)
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}

// printError writes err to stderr, with details and a suggestion when it
// carries them.
func printError(cmd *cobra.Command, err error) {
	var re *rerrors.RosterError
	if rerrors.As(err, &re) && (re.Suggestion != "" || len(re.Details) > 0) {
		cmd.PrintErr(re.Format())
		return
	}
	cmd.PrintErrln("Error:", err)
}

// loadConfig reads the file named by --config, falling back to defaults
// when it does not exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, config.Describe(err)
	}
	return cfg, nil
}

func loggingConfig(cfg *config.Config) *logging.Config {
	level, err := logging.ParseLevel(string(cfg.Logging.Level))
	if err != nil {
		level = logging.LevelInfo
	}
	return &logging.Config{
		Level:       level,
		LogDir:      cfg.Logging.Dir,
		MaxLogFiles: cfg.Logging.MaxFiles,
		MaxLogAge:   cfg.Logging.MaxAge,
		Console:     cfg.Logging.Console,
		JSONFormat:  cfg.Logging.JSON,
	}
}

// cliLogger returns the logger for the file commands. They never write log
// files; --verbose or logging.console send records to stderr.
func cliLogger(cmd *cobra.Command, cfg *config.Config) *logging.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	switch {
	case verbose:
		return logging.NewConsole(logging.LevelDebug)
	case cfg.Logging.Console:
		return logging.NewConsole(loggingConfig(cfg).Level)
	default:
		return logging.NewNoop()
	}
}

// newSession builds a session with the configured view and dialog rules.
func newSession(cfg *config.Config, opts ...session.Option) (*session.Session, error) {
	column, err := view.ParseColumn(string(cfg.View.SortColumn))
	if err != nil {
		return nil, rerrors.WithSuggestion(rerrors.ErrConfig, err.Error(),
			"Set view.sort_column to first, last or age")
	}
	direction, err := view.ParseDirection(string(cfg.View.SortDirection))
	if err != nil {
		return nil, rerrors.WithSuggestion(rerrors.ErrConfig, err.Error(),
			"Set view.sort_direction to asc or desc")
	}

	base := []session.Option{
		session.WithView(cfg.View.Filter, column, direction),
		session.WithRules(person.Rules{
			RejectNegativeAge: cfg.Editor.RejectNegativeAge,
			MaxNameLength:     cfg.Editor.MaxNameLength,
		}),
	}
	return session.New(append(base, opts...)...), nil
}

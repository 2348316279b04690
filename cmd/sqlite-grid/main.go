// sqlite-grid is a terminal browser for SQLite databases. Without a command
// it opens an interactive grid of tables; with one it prints and exits.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/johan-st/sqlite-grid/internal/browser"
	"github.com/johan-st/sqlite-grid/internal/cli"
	"github.com/johan-st/sqlite-grid/internal/config"
	"github.com/johan-st/sqlite-grid/internal/database"
	"github.com/johan-st/sqlite-grid/internal/logging"
	"github.com/johan-st/sqlite-grid/internal/tui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

const usageLine = "usage: sqlite-grid <database> [tables | dump <table> | count <table> | help]"

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command and maps its result to an exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	var exit *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.code
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile     string
		printConfig bool
	)

	cmd := &cobra.Command{
		Use:   "sqlite-grid <database> [command] [args]",
		Short: "Browse a SQLite database as a grid of cells",
		Long: `sqlite-grid opens a SQLite database read-only and shows its tables as a
grid. Move with h/j/k/l or the arrow keys, open a table with e or enter and
go back with q.

Given a command after the database path it prints the result and exits:
  tables          list tables and their row counts
  dump <table>    print a table's rows
  count <table>   print a table's row count
  help [command]  show command help`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			if printConfig {
				out, err := cfg.YAML()
				if err != nil {
					return fmt.Errorf("failed to render config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return &exitError{code: 1}
			}

			if len(args) > 1 {
				return runCLI(cmd, cfg, args[0], args[1:])
			}
			return runTUI(cfg, args[0])
		},
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./sqlite-grid.yaml)")
	flags.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")
	flags.Int("width", 0, "screen width in columns (default: terminal width)")
	flags.Int("height", 0, "screen height in rows (default: terminal height)")
	flags.Int("cell-width", browser.CellWidth, "width of one grid cell")
	flags.Int("row-limit", 1000, "maximum rows read from a table (0 for no limit)")
	flags.StringP("format", "f", config.FormatTable, "output format for commands (table|json|yaml|tsv)")
	flags.String("log-file", "", "write logs to this file")
	flags.Bool("debug", false, "enable debug logging")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// newLogger builds the run's logger. The returned func closes the log file,
// if one was opened.
func newLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		if fallback == nil {
			return logging.Discard(), func() {}, nil
		}
		return logging.WithSession(logging.New(fallback, cfg.Debug)), func() {}, nil
	}
	f, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return logging.WithSession(logging.New(f, cfg.Debug)), func() { f.Close() }, nil
}

// openEngine opens the database read-only and wraps it in a query engine.
func openEngine(cfg *config.Config, path string, logger *log.Logger) (*database.Connection, *database.Engine, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("cannot open database: %w", err)
	}
	conn, err := database.OpenReadOnly(path)
	if err != nil {
		return nil, nil, err
	}
	engine, err := database.NewEngine(conn, database.EngineOptions{
		HiddenTables: cfg.HiddenTables,
		RowLimit:     cfg.RowLimit,
		Logger:       logger,
	})
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, engine, nil
}

// runCLI runs one command against the database and exits with its status.
func runCLI(cmd *cobra.Command, cfg *config.Config, path string, args []string) error {
	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	conn, engine, err := openEngine(cfg, path, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	handler := cli.NewHandler(engine, version, logger)
	ctx := cli.NewCommandContext(args, cfg.Format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if code := handler.Handle(ctx); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// runTUI runs the interactive browser until the user quits.
func runTUI(cfg *config.Config, path string) error {
	// The terminal belongs to the browser, so logs only go to a file.
	logger, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	conn, engine, err := openEngine(cfg, path, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	width, height := screenSize(cfg)
	logger.Info("starting browser", "db", conn.Path, "width", width, "height", height)

	screen := tui.NewScreen()
	app := tui.NewApp(screen, tui.AppOptions{
		DatabasePath: conn.Path,
		Size:         conn.Size(),
		RowCount:     engine.RowCount,
		Keys:         browser.NewKeyMap(cfg.Keys.Bindings()),
		Logger:       logger,
	})

	factory := browser.NewFactory(engine, screen,
		browser.WithCellWidth(cfg.CellWidth),
		browser.WithFactoryLogger(logger),
	)
	// One row is kept for the status bar.
	nav, err := browser.New(factory, width, height-1,
		browser.WithKeyMap(browser.NewKeyMap(cfg.Keys.Bindings())),
		browser.WithLogger(logger),
		browser.OnTransition(app.SetView),
	)
	if err != nil {
		return err
	}

	watcher, err := database.NewWatcher(conn.Path, logger)
	if err != nil {
		logger.Warn("failed to create database watcher", "err", err)
	} else {
		watcher.OnChange(func(string) { app.MarkChanged() })
		if err := watcher.Start(); err != nil {
			logger.Warn("failed to start database watcher", "err", err)
		}
		defer watcher.Stop()
	}

	if err := tui.Run(app, nav, tea.WithAltScreen()); err != nil {
		return err
	}
	logger.Info("browser closed")
	return nil
}

// screenSize picks the grid size: configured values first, then the
// terminal, then the defaults.
func screenSize(cfg *config.Config) (width, height int) {
	width, height = browser.DefaultWidth, browser.DefaultHeight
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
	}
	if cfg.Width > 0 {
		width = cfg.Width
	}
	if cfg.Height > 0 {
		height = cfg.Height
	}
	return width, height
}

// Package cli implements the non-interactive commands: printing the table
// list or a table's contents instead of opening the browser.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/johan-st/sqlite-grid/internal/config"
	"github.com/johan-st/sqlite-grid/internal/database"
)

// Engine is what the commands need from the database.
type Engine interface {
	ListTables() (database.ResultSet, error)
	DumpTable(name string) (database.ResultSet, error)
	RowCount(name string) (int64, error)
}

// Handler handles CLI commands.
type Handler struct {
	engine  Engine
	version string
	logger  *log.Logger
}

// NewHandler creates a new CLI handler.
func NewHandler(engine Engine, version string, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		engine:  engine,
		version: version,
		logger:  logger,
	}
}

// CommandContext provides context for command execution.
type CommandContext struct {
	Args     []string
	Format   string
	Out      io.Writer
	Err      io.Writer
	exitCode int
}

// NewCommandContext creates a context for args, the command name first.
func NewCommandContext(args []string, format string, out, errOut io.Writer) *CommandContext {
	if format == "" {
		format = config.FormatTable
	}
	return &CommandContext{
		Args:   args,
		Format: format,
		Out:    out,
		Err:    errOut,
	}
}

// Exit sets the exit code.
func (c *CommandContext) Exit(code int) {
	c.exitCode = code
}

// ExitCode returns the exit code set by the command.
func (c *CommandContext) ExitCode() int {
	return c.exitCode
}

// RequireArg ensures an argument is provided.
func (c *CommandContext) RequireArg(index int, name string) (string, bool) {
	if index >= len(c.Args) {
		fmt.Fprintf(c.Err, "Missing required argument: %s\n", name)
		c.Exit(1)
		return "", false
	}
	return c.Args[index], true
}

// Handle runs the command named by ctx.Args[0] and returns its exit code.
func (h *Handler) Handle(ctx *CommandContext) int {
	if len(ctx.Args) == 0 {
		fmt.Fprintln(ctx.Err, "No command specified. Run 'help' for usage.")
		return 1
	}

	cmd := ctx.Args[0]
	ctx.Args = ctx.Args[1:]
	h.logger.Debug("running command", "command", cmd, "args", ctx.Args, "format", ctx.Format)
	h.routeCommand(cmd, ctx)
	return ctx.exitCode
}

// routeCommand routes a command to its handler.
func (h *Handler) routeCommand(cmd string, ctx *CommandContext) {
	switch cmd {
	case "tables":
		h.cmdTables(ctx)
	case "dump":
		h.cmdDump(ctx)
	case "count":
		h.cmdCount(ctx)
	case "help":
		h.cmdHelp(ctx)
	case "version":
		fmt.Fprintf(ctx.Out, "sqlite-grid %s\n", h.version)

	default:
		fmt.Fprintf(ctx.Err, "Unknown command: %s\n", cmd)
		fmt.Fprintln(ctx.Err, "Run 'help' for usage.")
		ctx.Exit(1)
	}
}

// fail reports err and sets a non-zero exit code.
func (h *Handler) fail(ctx *CommandContext, err error) {
	h.logger.Debug("command failed", "err", err)
	fmt.Fprintf(ctx.Err, "Error: %v\n", err)
	ctx.Exit(1)
}

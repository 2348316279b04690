package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/johan-st/sqlite-grid/internal/config"
	"github.com/johan-st/sqlite-grid/internal/database"
)

// cmdTables lists the visible tables with their row counts.
func (h *Handler) cmdTables(ctx *CommandContext) {
	tables, err := h.engine.ListTables()
	if err != nil {
		h.fail(ctx, err)
		return
	}

	rs := database.ResultSet{Columns: []string{"name", "rows"}}
	for _, row := range tables.Rows {
		name := row[0]
		n, err := h.engine.RowCount(name)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		rs.Rows = append(rs.Rows, []string{name, strconv.FormatInt(n, 10)})
	}

	if err := render(ctx.Out, rs, ctx.Format); err != nil {
		h.fail(ctx, err)
	}
}

// cmdDump prints a table's contents, up to the configured row limit.
func (h *Handler) cmdDump(ctx *CommandContext) {
	table, ok := ctx.RequireArg(0, "table")
	if !ok {
		return
	}

	rs, err := h.engine.DumpTable(table)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	if err := render(ctx.Out, rs, ctx.Format); err != nil {
		h.fail(ctx, err)
	}
}

// cmdCount prints the number of rows in a table.
func (h *Handler) cmdCount(ctx *CommandContext) {
	table, ok := ctx.RequireArg(0, "table")
	if !ok {
		return
	}

	n, err := h.engine.RowCount(table)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	switch ctx.Format {
	case config.FormatTable:
		fmt.Fprintf(ctx.Out, "%s rows\n", humanize.Comma(n))
	default:
		fmt.Fprintln(ctx.Out, n)
	}
}

// cmdHelp shows help information.
func (h *Handler) cmdHelp(ctx *CommandContext) {
	if len(ctx.Args) > 0 {
		h.showCommandHelp(ctx, ctx.Args[0])
		return
	}

	fmt.Fprintln(ctx.Out, `sqlite-grid - browse a SQLite database as a grid of cells

USAGE:
  sqlite-grid <database>                   Open the interactive browser
  sqlite-grid <database> <command> [args]  Run a command and exit

COMMANDS:
  tables                 List tables and their row counts
  dump <table>           Print a table's contents
  count <table>          Count rows in a table
  help [command]         Show help
  version                Show version

BROWSER KEYS:
  h/j/k/l, arrows        Move between cells
  e, enter               Open the selected table
  q                      Back to the table list, or quit

COMMON OPTIONS:
  --format=table|json|yaml|tsv   Output format (default table)

Run 'help <command>' for detailed help on a specific command.`)
}

// showCommandHelp shows help for a specific command.
func (h *Handler) showCommandHelp(ctx *CommandContext, command string) {
	help := map[string]string{
		"tables": `tables - List tables and their row counts

USAGE:
  sqlite-grid <database> tables [--format=...]

Tables matching hidden_tables (default "sqlite_*") are left out.`,

		"dump": `dump - Print a table's contents

USAGE:
  sqlite-grid <database> dump <table> [--format=...]

At most row_limit rows are printed (default 1000, 0 for all).`,

		"count": `count - Count rows in a table

USAGE:
  sqlite-grid <database> count <table>`,
	}

	if text, ok := help[command]; ok {
		fmt.Fprintln(ctx.Out, text)
		return
	}
	fmt.Fprintf(ctx.Err, "No help for: %s\n", command)
	ctx.Exit(1)
}

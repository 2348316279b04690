// Package browser lays query results out as grids of cells and drives the
// stack of views the user navigates through.
package browser

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/johan-st/sqlite-grid/internal/database"
	"github.com/johan-st/sqlite-grid/internal/grid"
)

// Layout defaults.
const (
	CellWidth     = 32
	DefaultWidth  = 80
	DefaultHeight = 40
)

var (
	// ErrEmptyTableList is returned, inside a *database.QueryError, when the
	// database has no visible tables.
	ErrEmptyTableList = fmt.Errorf("no tables to show: %w", database.ErrEmptyResult)
	// ErrEmptyTable is returned, inside a *database.QueryError, when a table
	// has no rows.
	ErrEmptyTable = fmt.Errorf("table has no rows: %w", database.ErrEmptyResult)
	// ErrNoRoom is returned when the screen cannot fit a single selectable cell.
	ErrNoRoom = errors.New("screen too small")
)

// QueryEngine answers the two questions the browser asks of a database.
type QueryEngine interface {
	ListTables() (database.ResultSet, error)
	DumpTable(name string) (database.ResultSet, error)
}

// Factory builds views from query results.
type Factory struct {
	engine    QueryEngine
	surface   grid.Surface
	cellWidth int
	logger    *log.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithCellWidth sets the width of one cell in terminal columns.
func WithCellWidth(n int) FactoryOption {
	return func(f *Factory) {
		if n > 0 {
			f.cellWidth = n
		}
	}
}

// WithFactoryLogger sets the factory's logger.
func WithFactoryLogger(l *log.Logger) FactoryOption {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFactory creates a Factory drawing onto surface.
func NewFactory(engine QueryEngine, surface grid.Surface, opts ...FactoryOption) *Factory {
	f := &Factory{
		engine:    engine,
		surface:   surface,
		cellWidth: CellWidth,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TableList builds a single-column view of table names with the first one
// selected.
func (f *Factory) TableList(width, height int) (*grid.View, error) {
	rs, err := f.engine.ListTables()
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, &database.QueryError{Op: "list tables", Err: ErrEmptyTableList}
	}
	if height < 1 {
		return nil, ErrNoRoom
	}

	rows := rs.Rows
	if len(rows) > height {
		f.logger.Debug("clipping table list", "tables", len(rows), "rows", height)
		rows = rows[:height]
	}

	g := grid.NewGrid(height, max(1, width/f.cellWidth))
	for y, row := range rows {
		if err := f.place(g, grid.Pos{X: 0, Y: y}, first(row), true); err != nil {
			g.Close()
			return nil, err
		}
	}

	active := grid.Pos{X: 0, Y: 0}
	g.Get(active).Select()
	return grid.NewView(g, grid.TableList, active, ""), nil
}

// TableDump builds a view of a table: a header row of column names followed
// by one row per record, with the first value of the first record selected.
func (f *Factory) TableDump(name string, width, height int) (*grid.View, error) {
	rs, err := f.engine.DumpTable(name)
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return nil, &database.QueryError{Op: "dump table", Table: name, Err: ErrEmptyTable}
	}
	if height < 2 || width < 1 {
		return nil, ErrNoRoom
	}

	// The column ceiling is the width in characters, not in cells.
	g := grid.NewGrid(height, width)

	columns := rs.Columns
	if len(columns) > g.Cols() {
		f.logger.Debug("clipping dump columns", "table", name, "columns", len(columns), "cols", g.Cols())
		columns = columns[:g.Cols()]
	}
	rows := rs.Rows
	if len(rows) > g.Rows()-1 {
		f.logger.Debug("clipping dump rows", "table", name, "records", len(rows), "rows", g.Rows()-1)
		rows = rows[:g.Rows()-1]
	}

	for x, col := range columns {
		if err := f.place(g, grid.Pos{X: x, Y: 0}, col, false); err != nil {
			g.Close()
			return nil, err
		}
	}
	for r, row := range rows {
		for x, v := range row {
			if x >= g.Cols() {
				break
			}
			if err := f.place(g, grid.Pos{X: x, Y: r + 1}, v, true); err != nil {
				g.Close()
				return nil, err
			}
		}
	}

	active := grid.Pos{X: 0, Y: 1}
	c := g.Get(active)
	if c == nil {
		// A record with no values.
		g.Close()
		return nil, &database.QueryError{Op: "dump table", Table: name, Err: ErrEmptyTable}
	}
	c.Select()
	return grid.NewView(g, grid.TableDump, active, name), nil
}

func (f *Factory) place(g *grid.Grid, p grid.Pos, text string, selectable bool) error {
	win := f.surface.NewWindow(1, f.cellWidth, p.Y, p.X*f.cellWidth)
	c := grid.NewCell(p, win, selectable)
	if err := g.Set(p, c); err != nil {
		win.Close()
		return err
	}
	c.SetText(text)
	return nil
}

func first(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

package database

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNoSuchTable is returned when a dump is requested for an unknown table.
var ErrNoSuchTable = errors.New("no such table")

// DefaultHiddenTables hides SQLite's internal bookkeeping tables.
var DefaultHiddenTables = []string{"sqlite_*"}

// EngineOptions configures an Engine.
type EngineOptions struct {
	// HiddenTables are doublestar patterns of table names left out of listings.
	HiddenTables []string
	// RowLimit caps the rows returned by DumpTable. Zero means no limit.
	RowLimit int
	Logger   *log.Logger
}

// Engine answers table listing and table dump requests over one connection.
type Engine struct {
	conn     *Connection
	catalog  *catalog
	rowLimit int
	logger   *log.Logger
}

// NewEngine creates an Engine. It fails if a hidden table pattern is malformed.
func NewEngine(conn *Connection, opts EngineOptions) (*Engine, error) {
	cat, err := newCatalog(conn, opts.HiddenTables)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		conn:     conn,
		catalog:  cat,
		rowLimit: opts.RowLimit,
		logger:   logger,
	}, nil
}

// ListTables returns the visible table names as a one-column result set.
func (e *Engine) ListTables() (ResultSet, error) {
	rs, hidden, err := e.catalog.tables()
	if err != nil {
		return ResultSet{}, &QueryError{Op: "list tables", Err: err}
	}
	e.logger.Debug("listed tables", "count", len(rs.Rows), "hidden", hidden)
	return rs, nil
}

// DumpTable returns the contents of a table, up to the configured row limit.
func (e *Engine) DumpTable(name string) (ResultSet, error) {
	exists, err := e.catalog.has(name)
	if err != nil {
		return ResultSet{}, &QueryError{Op: "dump table", Table: name, Err: err}
	}
	if !exists {
		return ResultSet{}, &QueryError{Op: "dump table", Table: name, Err: ErrNoSuchTable}
	}

	result, err := selectRows(e.conn, name, e.rowLimit)
	if err != nil {
		return ResultSet{}, &QueryError{Op: "dump table", Table: name, Err: err}
	}
	e.logger.Debug("dumped table", "table", name, "rows", len(result.Rows), "took", result.Duration)
	return result.ResultSet(), nil
}

// RowCount returns the total number of rows in a table, ignoring the limit.
func (e *Engine) RowCount(name string) (int64, error) {
	return e.catalog.rowCount(name)
}

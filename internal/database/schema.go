package database

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	listTablesSQL = `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`
	hasTableSQL   = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
)

// catalog reads table names and sizes from sqlite_master. Tables matching a
// hidden pattern are left out of listings but can still be dumped by name.
type catalog struct {
	conn   *Connection
	hidden []string
}

func newCatalog(conn *Connection, hidden []string) (*catalog, error) {
	for _, p := range hidden {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid hidden table pattern %q", p)
		}
	}
	return &catalog{conn: conn, hidden: hidden}, nil
}

// tables returns the visible tables as a one-column result set, ordered by
// name, and the number of tables that were hidden.
func (c *catalog) tables() (ResultSet, int, error) {
	rows, err := c.conn.Query(listTablesSQL)
	if err != nil {
		return ResultSet{}, 0, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	rs := ResultSet{Columns: []string{"name"}}
	hidden := 0
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return ResultSet{}, 0, fmt.Errorf("failed to scan table name: %w", err)
		}
		if c.hides(name) {
			hidden++
			continue
		}
		rs.Rows = append(rs.Rows, []string{name})
	}
	return rs, hidden, rows.Err()
}

// has reports whether a table called name exists, hidden or not.
func (c *catalog) has(name string) (bool, error) {
	var n int
	if err := c.conn.QueryRow(hasTableSQL, name).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up table: %w", err)
	}
	return n > 0, nil
}

// rowCount counts every row of a table; the dump row limit does not apply.
func (c *catalog) rowCount(name string) (int64, error) {
	var n int64
	if err := c.conn.QueryRow("SELECT COUNT(*) FROM " + quoteIdentifier(name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

func (c *catalog) hides(name string) bool {
	for _, p := range c.hidden {
		// Patterns were validated in newCatalog.
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// quoteIdentifier quotes a table or column name for use in SQL text.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

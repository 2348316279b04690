// Package database opens SQLite files and answers the two questions the
// browser asks: which tables exist, and what is in one of them.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Connection is a read-only handle on one database file.
type Connection struct {
	DB   *sql.DB
	Path string
	mu   sync.Mutex
}

// OpenOptions configures how a database connection is opened.
type OpenOptions struct {
	BusyTimeout int // milliseconds
}

// DefaultOpenOptions returns the options OpenReadOnly uses.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{
		BusyTimeout: 5000, // 5 seconds
	}
}

// Open opens the database at path read-only. Cells are never edited, so
// there is no writable mode.
func Open(path string, opts OpenOptions) (*Connection, error) {
	// mode=ro would report a cryptic "unable to open" for a typo.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(%d)", path, opts.BusyTimeout)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One logical control path, one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return NewConnection(db, path), nil
}

// OpenReadOnly opens a database with the default options.
func OpenReadOnly(path string) (*Connection, error) {
	return Open(path, DefaultOpenOptions())
}

// NewConnection wraps an already opened *sql.DB.
func NewConnection(db *sql.DB, path string) *Connection {
	return &Connection{
		DB:   db,
		Path: path,
	}
}

// Close closes the database connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query runs a query that returns rows.
func (c *Connection) Query(query string, args ...any) (*sql.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.DB.Query(query, args...)
}

// QueryRow runs a query that returns at most one row.
func (c *Connection) QueryRow(query string, args ...any) *sql.Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.DB.QueryRow(query, args...)
}

// Size returns the size of the database file in bytes, or 0 if unknown.
func (c *Connection) Size() int64 {
	info, err := os.Stat(c.Path)
	if err != nil {
		return 0
	}
	return info.Size()
}

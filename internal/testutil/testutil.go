// Package testutil provides test utilities for sqlite-grid tests.
package testutil

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// UsersSchema is the standard fixture: two populated tables and one empty one.
const UsersSchema = `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL
	);

	CREATE TABLE orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		total REAL,
		note TEXT,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE zz_empty (
		id INTEGER PRIMARY KEY
	);

	INSERT INTO users (name, email) VALUES
		('Alice', 'alice@example.com'),
		('Bob', 'bob@example.com'),
		('Charlie', 'charlie@example.com');

	INSERT INTO orders (user_id, total, note) VALUES
		(1, 9.5, 'first'),
		(2, 20, NULL);
`

// NewDB creates a database file in a temp dir and runs schema against it.
// The file is removed with the temp dir when the test ends.
func NewDB(t *testing.T, name, schema string) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), name)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer db.Close()

	if schema != "" {
		MustExec(t, db, schema)
	}
	// Force the file into existence for empty schemas.
	MustExec(t, db, "PRAGMA user_version = 1")

	return dbPath
}

// UsersDB creates the standard users/orders fixture.
func UsersDB(t *testing.T) string {
	t.Helper()
	return NewDB(t, "users.db", UsersSchema)
}

// EmptyDB creates a database with no tables.
func EmptyDB(t *testing.T) string {
	t.Helper()
	return NewDB(t, "empty.db", "")
}

// OutputCapture is a helper for capturing CLI output.
type OutputCapture struct {
	Out bytes.Buffer
	Err bytes.Buffer
}

// Stdout returns captured stdout as string.
func (c *OutputCapture) Stdout() string {
	return c.Out.String()
}

// Stderr returns captured stderr as string.
func (c *OutputCapture) Stderr() string {
	return c.Err.String()
}

// MustExec executes SQL or fails the test.
func MustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("MustExec failed: %v\nQuery: %s", err, query)
	}
}

package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/johan-st/sqlite-grid/internal/testutil"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dbPath := testutil.UsersDB(t)

	w, err := NewWatcher(dbPath, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	changed := make(chan string, 1)
	w.OnChange(func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	defer db.Close()
	testutil.MustExec(t, db, "INSERT INTO users (name, email) VALUES ('Dana', 'dana@example.com')")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := NewWatcher(testutil.UsersDB(t), nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}

package browser

import (
	"errors"
	"fmt"

	"github.com/johan-st/sqlite-grid/internal/database"
)

// fakeEngine serves canned result sets and records what was asked.
type fakeEngine struct {
	tables  database.ResultSet
	dumps   map[string]database.ResultSet
	listErr error
	calls   []string
}

func (e *fakeEngine) ListTables() (database.ResultSet, error) {
	e.calls = append(e.calls, "list")
	if e.listErr != nil {
		return database.ResultSet{}, e.listErr
	}
	return e.tables, nil
}

func (e *fakeEngine) DumpTable(name string) (database.ResultSet, error) {
	e.calls = append(e.calls, "dump:"+name)
	rs, ok := e.dumps[name]
	if !ok {
		return database.ResultSet{}, &database.QueryError{Op: "dump table", Table: name, Err: errors.New("no such table")}
	}
	return rs, nil
}

// usersOrders exposes tables users and orders, in that order.
func usersOrders() *fakeEngine {
	return &fakeEngine{
		tables: database.ResultSet{
			Columns: []string{"name"},
			Rows:    [][]string{{"users"}, {"orders"}},
		},
		dumps: map[string]database.ResultSet{
			"users": {
				Columns: []string{"id", "name", "email"},
				Rows: [][]string{
					{"1", "Alice", "alice@example.com"},
					{"2", "Bob", "bob@example.com"},
				},
			},
			"orders": {
				Columns: []string{"id", "user_id", "total"},
				Rows:    [][]string{{"1", "1", "9.5"}},
			},
		},
	}
}

// manyTables lists n tables named t00, t01, ...
func manyTables(n int) *fakeEngine {
	e := &fakeEngine{tables: database.ResultSet{Columns: []string{"name"}}}
	for i := 0; i < n; i++ {
		e.tables.Rows = append(e.tables.Rows, []string{fmt.Sprintf("t%02d", i)})
	}
	return e
}

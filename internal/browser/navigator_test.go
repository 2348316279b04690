package browser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/johan-st/sqlite-grid/internal/database"
	"github.com/johan-st/sqlite-grid/internal/grid"
	"github.com/johan-st/sqlite-grid/internal/testutil"
)

func newNavigator(t *testing.T, e QueryEngine, width, height int, opts ...Option) (*Navigator, *testutil.FakeSurface) {
	t.Helper()
	s := testutil.NewFakeSurface()
	n, err := New(NewFactory(e, s), width, height, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return n, s
}

func mustContinue(t *testing.T, n *Navigator, k grid.Key) {
	t.Helper()
	if out := n.Dispatch(k); out.Kind != Continue {
		t.Fatalf("Dispatch(%q) = %v (%v), want continue", k, out.Kind, out.Err)
	}
}

func TestNavigator_FreshSession(t *testing.T) {
	n, s := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight)

	if n.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", n.Depth())
	}
	top := n.Top()
	if top.Active() != (grid.Pos{X: 0, Y: 0}) {
		t.Errorf("Active() = %s, want (0,0)", top.Active())
	}
	if got := top.ActiveCell().Text(); got != "users" {
		t.Errorf("active text = %q, want users", got)
	}
	if w := s.At(0, 0); !w.Standout || w.Content != "*users*" {
		t.Errorf("active window = %q standout=%v, want *users* emphasized", w.Content, w.Standout)
	}
}

func TestNavigator_BoundaryBump(t *testing.T) {
	// One cell wide: the table list is a single column.
	n, _ := newNavigator(t, usersOrders(), CellWidth, DefaultHeight)

	for _, k := range []grid.Key{"h", "k", "l", "left", "up"} {
		mustContinue(t, n, k)
		if got := n.Top().Active(); got != (grid.Pos{}) {
			t.Fatalf("after %q active = %s, want (0,0)", k, got)
		}
	}
}

func TestNavigator_ValidDescent(t *testing.T) {
	n, s := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight)

	mustContinue(t, n, "j")

	if got := n.Top().Active(); got != (grid.Pos{X: 0, Y: 1}) {
		t.Fatalf("Active() = %s, want (0,1)", got)
	}
	if w := s.At(0, 0); w.Content != "users" || w.Standout {
		t.Errorf("previous cell = %q standout=%v, want plain users", w.Content, w.Standout)
	}
	if w := s.At(1, 0); w.Content != "*orders*" {
		t.Errorf("new cell = %q, want *orders*", w.Content)
	}

	// Below the last table there is nothing to select.
	mustContinue(t, n, "j")
	if got := n.Top().Active(); got != (grid.Pos{X: 0, Y: 1}) {
		t.Errorf("Active() after bump = %s, want (0,1)", got)
	}
}

func TestNavigator_OpenPushesDump(t *testing.T) {
	e := usersOrders()
	n, _ := newNavigator(t, e, DefaultWidth, DefaultHeight)

	mustContinue(t, n, "e")

	if n.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", n.Depth())
	}
	top := n.Top()
	if top.Kind() != grid.TableDump {
		t.Fatalf("Kind() = %v, want dump", top.Kind())
	}

	var header []string
	for x := 0; x < top.Grid().Cols(); x++ {
		c := top.Grid().Get(grid.Pos{X: x, Y: 0})
		if c == nil {
			break
		}
		header = append(header, c.Text())
	}
	if want := e.dumps["users"].Columns; !reflect.DeepEqual(header, want) {
		t.Errorf("header = %v, want %v", header, want)
	}
	if want := []string{"list", "dump:users"}; !reflect.DeepEqual(e.calls, want) {
		t.Errorf("engine calls = %v, want %v", e.calls, want)
	}
}

func TestNavigator_OpenQuitRoundTrip(t *testing.T) {
	n, s := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight)
	mustContinue(t, n, "j")
	before := n.Top().Active()

	mustContinue(t, n, "e")
	if n.Top().Title() != "orders" {
		t.Fatalf("opened %q, want orders", n.Top().Title())
	}
	mustContinue(t, n, "j") // no second record; stays put
	mustContinue(t, n, "l")
	mustContinue(t, n, "q")

	if n.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", n.Depth())
	}
	if got := n.Top().Active(); got != before {
		t.Errorf("Active() = %s, want %s", got, before)
	}
	if w := s.At(1, 0); w == nil || w.Content != "*orders*" {
		t.Errorf("list not redrawn: %+v", w)
	}
	if w := s.At(0, 0); w == nil || w.Content != "users" {
		t.Errorf("list not redrawn: %+v", w)
	}
	// Only the list's two windows remain.
	if got := len(s.Live()); got != 2 {
		t.Errorf("live windows = %d, want 2", got)
	}
}

func TestNavigator_QuitAtRoot(t *testing.T) {
	n, s := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight)

	out := n.Dispatch("q")

	if out.Kind != Terminate {
		t.Errorf("Dispatch(q) = %v, want terminate", out.Kind)
	}
	if n.Depth() != 0 || n.Top() != nil {
		t.Errorf("Depth() = %d, want 0", n.Depth())
	}
	if got := len(s.Live()); got != 0 {
		t.Errorf("live windows = %d, want 0", got)
	}
}

func TestNavigator_ExitFromDump(t *testing.T) {
	var last Transition
	n, s := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight,
		OnTransition(func(tr Transition) { last = tr }))
	mustContinue(t, n, "e")

	out := n.Dispatch("ctrl+c")

	if out.Kind != Terminate {
		t.Errorf("Dispatch(ctrl+c) = %v, want terminate", out.Kind)
	}
	if n.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", n.Depth())
	}
	if got := len(s.Live()); got != 0 {
		t.Errorf("live windows = %d, want 0", got)
	}
	if last != (Transition{Kind: grid.TableList, Depth: 0}) {
		t.Errorf("last transition = %+v, want list at depth 0", last)
	}
}

func TestNavigator_OpenOnDumpIsNoop(t *testing.T) {
	e := usersOrders()
	n, _ := newNavigator(t, e, DefaultWidth, DefaultHeight)
	mustContinue(t, n, "e")
	top := n.Top()

	mustContinue(t, n, "e")

	if n.Depth() != 2 || n.Top() != top {
		t.Errorf("stack changed: depth %d", n.Depth())
	}
	if len(e.calls) != 2 {
		t.Errorf("engine calls = %v, want 2", e.calls)
	}
}

func TestNavigator_OpenFailureKeepsList(t *testing.T) {
	e := usersOrders()
	e.dumps["users"] = database.ResultSet{Columns: []string{"id"}}
	n, s := newNavigator(t, e, DefaultWidth, DefaultHeight)
	list := n.Top()

	out := n.Dispatch("e")

	if out.Kind != Error {
		t.Fatalf("Dispatch(e) = %v, want error", out.Kind)
	}
	if !errors.Is(out.Err, ErrEmptyTable) || !database.IsQueryError(out.Err) {
		t.Errorf("err = %v, want ErrEmptyTable inside a QueryError", out.Err)
	}
	if n.Depth() != 1 || n.Top() != list {
		t.Errorf("stack changed: depth %d", n.Depth())
	}
	if w := s.At(0, 0); w.Content != "*users*" {
		t.Errorf("list not redrawn: %q", w.Content)
	}
}

func TestNavigator_UnknownKeys(t *testing.T) {
	n, _ := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight)

	for _, k := range []grid.Key{"x", "", "ctrl+a", "Q", "esc"} {
		mustContinue(t, n, k)
	}
	if n.Depth() != 1 || n.Top().Active() != (grid.Pos{}) {
		t.Errorf("state changed: depth %d active %s", n.Depth(), n.Top().Active())
	}
}

func TestNavigator_StackNeverEmptyBeforeTerminate(t *testing.T) {
	n, _ := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight)

	keys := []grid.Key{
		"j", "e", "l", "l", "j", "q", "k", "e", "e", "h", "q",
		"e", "q", "j", "j", "k", "e", "q", "x", "q",
	}
	for i, k := range keys {
		out := n.Dispatch(k)
		if out.Kind == Terminate {
			if n.Depth() != 0 {
				t.Fatalf("terminate with depth %d", n.Depth())
			}
			if i != len(keys)-1 {
				t.Fatalf("terminated early at key %d", i)
			}
			return
		}
		if n.Depth() < 1 {
			t.Fatalf("after key %d (%q) depth = %d", i, k, n.Depth())
		}
	}
	t.Fatal("sequence did not terminate")
}

func TestNavigator_Run(t *testing.T) {
	tests := []struct {
		name    string
		keys    []grid.Key
		wantErr error
	}{
		{"open and quit out", []grid.Key{"j", "e", "q", "q"}, nil},
		{"input ends", []grid.Key{"j"}, grid.ErrSurfaceClosed},
		{"query failure", []grid.Key{"j", "j", "e"}, ErrEmptyTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := usersOrders()
			e.tables.Rows = append(e.tables.Rows, []string{"empty"})
			e.dumps["empty"] = database.ResultSet{Columns: []string{"id"}}
			n, s := newNavigator(t, e, DefaultWidth, DefaultHeight)
			s.Press(tt.keys...)

			err := n.Run()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Run() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNavigator_Close(t *testing.T) {
	n, s := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight)
	mustContinue(t, n, "e")

	n.Close()

	if n.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", n.Depth())
	}
	if got := len(s.Live()); got != 0 {
		t.Errorf("live windows = %d, want 0", got)
	}
}

func TestNavigator_Transitions(t *testing.T) {
	var got []Transition
	n, _ := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight,
		OnTransition(func(tr Transition) { got = append(got, tr) }))

	mustContinue(t, n, "e")
	mustContinue(t, n, "q")
	n.Dispatch("q")

	want := []Transition{
		{Kind: grid.TableList, Depth: 1},
		{Kind: grid.TableDump, Title: "users", Depth: 2},
		{Kind: grid.TableList, Depth: 1},
		{Kind: grid.TableList, Depth: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("transitions = %+v, want %+v", got, want)
	}
}

func TestNavigator_CustomKeys(t *testing.T) {
	keys := NewKeyMap(Bindings{Down: []string{"s"}, Quit: []string{"x"}})
	n, _ := newNavigator(t, usersOrders(), DefaultWidth, DefaultHeight, WithKeyMap(keys))

	mustContinue(t, n, "j")
	if got := n.Top().Active(); got != (grid.Pos{}) {
		t.Errorf("j still moves: active %s", got)
	}
	mustContinue(t, n, "s")
	if got := n.Top().Active(); got != (grid.Pos{X: 0, Y: 1}) {
		t.Errorf("s did not move down: active %s", got)
	}
	if out := n.Dispatch("x"); out.Kind != Terminate {
		t.Errorf("Dispatch(x) = %v, want terminate", out.Kind)
	}
}

func TestNew_EmptyDatabase(t *testing.T) {
	s := testutil.NewFakeSurface()
	_, err := New(NewFactory(manyTables(0), s), DefaultWidth, DefaultHeight)
	if !errors.Is(err, ErrEmptyTableList) {
		t.Errorf("err = %v, want ErrEmptyTableList", err)
	}
}

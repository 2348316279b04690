package grid_test

import (
	"errors"
	"testing"

	"github.com/johan-st/sqlite-grid/internal/grid"
	"github.com/johan-st/sqlite-grid/internal/testutil"
)

// place creates a cell with text at p, drawing into a fake window.
func place(t *testing.T, s *testutil.FakeSurface, g *grid.Grid, p grid.Pos, text string, selectable bool) *grid.Cell {
	t.Helper()
	c := grid.NewCell(p, s.NewWindow(1, 8, p.Y, p.X*8), selectable)
	c.SetText(text)
	if err := g.Set(p, c); err != nil {
		t.Fatalf("Set(%s): %v", p, err)
	}
	return c
}

func TestGrid_GetOutOfRange(t *testing.T) {
	s := testutil.NewFakeSurface()
	g := grid.NewGrid(2, 3)
	place(t, s, g, grid.Pos{X: 0, Y: 0}, "a", true)

	tests := []struct {
		name string
		pos  grid.Pos
	}{
		{"negative x", grid.Pos{X: -1, Y: 0}},
		{"negative y", grid.Pos{X: 0, Y: -1}},
		{"x equal to cols", grid.Pos{X: 3, Y: 0}},
		{"y equal to rows", grid.Pos{X: 0, Y: 2}},
		{"far away", grid.Pos{X: 100, Y: 100}},
		{"in range but empty", grid.Pos{X: 2, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := g.Get(tt.pos); c != nil {
				t.Errorf("Get(%s) = %q, want nil", tt.pos, c.Text())
			}
		})
	}

	if c := g.Get(grid.Pos{}); c == nil || c.Text() != "a" {
		t.Errorf("Get(0,0) = %v, want cell \"a\"", c)
	}
}

func TestGrid_SetOutOfBounds(t *testing.T) {
	s := testutil.NewFakeSurface()
	g := grid.NewGrid(1, 1)
	c := grid.NewCell(grid.Pos{X: 1, Y: 0}, s.NewWindow(1, 8, 0, 8), true)

	err := g.Set(grid.Pos{X: 1, Y: 0}, c)
	if !errors.Is(err, grid.ErrOutOfBounds) {
		t.Fatalf("Set outside grid: err = %v, want ErrOutOfBounds", err)
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}

func TestGrid_NegativeSize(t *testing.T) {
	g := grid.NewGrid(-1, -5)
	if g.Rows() != 0 || g.Cols() != 0 {
		t.Errorf("size = %dx%d, want 0x0", g.Cols(), g.Rows())
	}
	if g.Get(grid.Pos{}) != nil {
		t.Error("Get on empty grid returned a cell")
	}
}

func TestGrid_ClearAllKeepsCells(t *testing.T) {
	s := testutil.NewFakeSurface()
	g := grid.NewGrid(2, 2)
	a := place(t, s, g, grid.Pos{X: 0, Y: 0}, "a", true)
	place(t, s, g, grid.Pos{X: 1, Y: 1}, "b", true)

	g.ClearAll()

	if len(s.Visible()) != 0 {
		t.Errorf("visible after ClearAll = %v, want none", s.Visible())
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if a.Text() != "a" {
		t.Errorf("text after clear = %q, want %q", a.Text(), "a")
	}
}

func TestGrid_RedrawAllSelectsActive(t *testing.T) {
	s := testutil.NewFakeSurface()
	g := grid.NewGrid(2, 1)
	place(t, s, g, grid.Pos{X: 0, Y: 0}, "users", true)
	place(t, s, g, grid.Pos{X: 0, Y: 1}, "orders", true)
	g.ClearAll()

	g.RedrawAll(grid.Pos{X: 0, Y: 1})

	if w := s.At(0, 0); w.Content != "users" || w.Standout {
		t.Errorf("(0,0) = %q standout=%v, want plain %q", w.Content, w.Standout, "users")
	}
	if w := s.At(1, 0); w.Content != "*orders*" || !w.Standout {
		t.Errorf("(0,1) = %q standout=%v, want emphasized %q", w.Content, w.Standout, "*orders*")
	}
}

func TestGrid_CloseReleasesWindows(t *testing.T) {
	s := testutil.NewFakeSurface()
	g := grid.NewGrid(1, 2)
	place(t, s, g, grid.Pos{X: 0, Y: 0}, "a", true)
	place(t, s, g, grid.Pos{X: 1, Y: 0}, "b", false)

	g.Close()

	if n := len(s.Live()); n != 0 {
		t.Errorf("live windows after Close = %d, want 0", n)
	}
}

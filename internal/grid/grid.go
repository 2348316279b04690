package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a cell is placed outside the grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// Grid is a rows x cols sparse array of cells. Empty slots are valid.
type Grid struct {
	rows, cols int
	cells      [][]*Cell // indexed [y][x]
}

// NewGrid creates a grid with every slot empty.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([][]*Cell, rows)
	for y := range cells {
		cells[y] = make([]*Cell, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Pos) bool {
	return !(p.X < 0 || p.X >= g.cols || p.Y < 0 || p.Y >= g.rows)
}

// Get returns the cell at p, or nil if p is out of range or the slot is empty.
func (g *Grid) Get(p Pos) *Cell {
	if !g.Contains(p) {
		return nil
	}
	return g.cells[p.Y][p.X]
}

// Set places cell at p, replacing whatever was there.
func (g *Grid) Set(p Pos, cell *Cell) error {
	if !g.Contains(p) {
		return fmt.Errorf("set %s in %dx%d grid: %w", p, g.cols, g.rows, ErrOutOfBounds)
	}
	g.cells[p.Y][p.X] = cell
	return nil
}

// Len returns the number of occupied slots.
func (g *Grid) Len() int {
	n := 0
	g.each(func(*Cell) { n++ })
	return n
}

// ClearAll blanks every occupied cell's window. Cells stay in the grid.
func (g *Grid) ClearAll() {
	g.each(func(c *Cell) { c.Clear() })
}

// RedrawAll rewrites every occupied cell; the cell at active is drawn selected.
func (g *Grid) RedrawAll(active Pos) {
	g.each(func(c *Cell) {
		c.Redraw()
		if c.pos == active {
			c.Select()
		}
	})
}

// Close releases every cell's window.
func (g *Grid) Close() {
	g.each(func(c *Cell) { c.Close() })
}

func (g *Grid) each(fn func(*Cell)) {
	for _, row := range g.cells {
		for _, c := range row {
			if c != nil {
				fn(c)
			}
		}
	}
}

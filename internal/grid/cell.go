package grid

import "fmt"

// Pos addresses a slot in a Grid. X is the column and Y the row.
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Left returns the position one column to the left.
func (p Pos) Left() Pos { return Pos{p.X - 1, p.Y} }

// Right returns the position one column to the right.
func (p Pos) Right() Pos { return Pos{p.X + 1, p.Y} }

// Up returns the position one row up.
func (p Pos) Up() Pos { return Pos{p.X, p.Y - 1} }

// Down returns the position one row down.
func (p Pos) Down() Pos { return Pos{p.X, p.Y + 1} }

// Highlight returns the emphasized form of a cell's text.
func Highlight(s string) string {
	return "*" + s + "*"
}

// Cell is one display unit of a Grid, bound to its own terminal window.
type Cell struct {
	pos        Pos
	text       string
	selectable bool
	win        Window
}

// NewCell creates an empty cell at pos drawing into win.
func NewCell(pos Pos, win Window, selectable bool) *Cell {
	return &Cell{
		pos:        pos,
		selectable: selectable,
		win:        win,
	}
}

// Pos returns the cell's grid position.
func (c *Cell) Pos() Pos { return c.pos }

// Text returns the cell's text without emphasis.
func (c *Cell) Text() string { return c.text }

// Selectable reports whether the cursor may rest on the cell.
func (c *Cell) Selectable() bool { return c.selectable }

// SetText stores text and writes it to the window.
func (c *Cell) SetText(s string) {
	c.text = s
	c.win.Write(s)
}

// Select draws the cell in its emphasized form.
func (c *Cell) Select() {
	c.win.WriteStandout(Highlight(c.text))
}

// Unselect draws the cell's plain text.
func (c *Cell) Unselect() {
	c.win.Write(c.text)
}

// Redraw rewrites the plain text, e.g. after the window was cleared.
func (c *Cell) Redraw() {
	c.win.Write(c.text)
}

// Clear blanks the window. The text is kept for the next redraw.
func (c *Cell) Clear() {
	c.win.Clear()
}

// ReadKey blocks on a key press scoped to the cell's window.
func (c *Cell) ReadKey() (Key, error) {
	return c.win.ReadKey()
}

// Close releases the window.
func (c *Cell) Close() {
	c.win.Close()
}

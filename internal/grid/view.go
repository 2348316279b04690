package grid

// Kind tells what a View shows.
type Kind int

const (
	TableList Kind = iota
	TableDump
)

func (k Kind) String() string {
	switch k {
	case TableList:
		return "tables"
	case TableDump:
		return "dump"
	default:
		return "unknown"
	}
}

// View is one full-screen layout: a grid plus the active cell.
//
// The active position always addresses a selectable cell. Moves that would
// break this are rejected without error.
type View struct {
	grid   *Grid
	active Pos
	kind   Kind
	title  string
}

// NewView wraps g. The caller has already drawn the cell at active selected.
func NewView(g *Grid, kind Kind, active Pos, title string) *View {
	return &View{
		grid:   g,
		active: active,
		kind:   kind,
		title:  title,
	}
}

// Kind returns the view kind.
func (v *View) Kind() Kind { return v.kind }

// Title returns the view's title (the table name for dumps).
func (v *View) Title() string { return v.title }

// Grid returns the underlying grid.
func (v *View) Grid() *Grid { return v.grid }

// Active returns the active position.
func (v *View) Active() Pos { return v.active }

// ActiveCell returns the cell at the active position.
func (v *View) ActiveCell() *Cell {
	return v.grid.Get(v.active)
}

// MoveTo makes the cell at candidate active. It returns false and leaves the
// view untouched when candidate is out of range, empty, or not selectable.
func (v *View) MoveTo(candidate Pos) bool {
	next := v.grid.Get(candidate)
	if next == nil || !next.Selectable() {
		return false
	}
	if candidate != v.active {
		if prev := v.grid.Get(v.active); prev != nil {
			prev.Unselect()
		}
	}
	next.Select()
	v.active = candidate
	return true
}

// Clear blanks the view's rendering.
func (v *View) Clear() {
	v.grid.ClearAll()
}

// Redraw draws the whole view, active cell emphasized.
func (v *View) Redraw() {
	v.grid.RedrawAll(v.active)
}

// Close releases all windows of the view.
func (v *View) Close() {
	v.grid.Close()
}

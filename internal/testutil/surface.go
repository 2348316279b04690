package testutil

import (
	"github.com/johan-st/sqlite-grid/internal/grid"
)

// FakeSurface is an in-memory grid.Surface. Keys queued with Press are
// returned by ReadKey in order; once they run out ReadKey reports
// grid.ErrSurfaceClosed.
type FakeSurface struct {
	Windows []*FakeWindow
	keys    []grid.Key
}

// NewFakeSurface creates an empty surface.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{}
}

// NewWindow implements grid.Surface.
func (s *FakeSurface) NewWindow(rows, cols, y, x int) grid.Window {
	w := &FakeWindow{Rows: rows, Cols: cols, Y: y, X: x, surface: s}
	s.Windows = append(s.Windows, w)
	return w
}

// Press queues keys for ReadKey.
func (s *FakeSurface) Press(keys ...grid.Key) {
	s.keys = append(s.keys, keys...)
}

// Live returns the windows that have not been closed.
func (s *FakeSurface) Live() []*FakeWindow {
	var live []*FakeWindow
	for _, w := range s.Windows {
		if !w.Closed {
			live = append(live, w)
		}
	}
	return live
}

// At returns the most recently created live window at screen position (y, x).
func (s *FakeSurface) At(y, x int) *FakeWindow {
	for i := len(s.Windows) - 1; i >= 0; i-- {
		w := s.Windows[i]
		if !w.Closed && w.Y == y && w.X == x {
			return w
		}
	}
	return nil
}

// Visible returns the content of every live, non-blank window.
func (s *FakeSurface) Visible() []string {
	var out []string
	for _, w := range s.Live() {
		if w.Content != "" {
			out = append(out, w.Content)
		}
	}
	return out
}

// FakeWindow records what was drawn into it.
type FakeWindow struct {
	Rows, Cols, Y, X int

	Content  string
	Standout bool
	Closed   bool
	// Ops logs each call as "write:<text>", "standout:<text>" or "clear".
	Ops []string

	surface *FakeSurface
}

// Write implements grid.Window.
func (w *FakeWindow) Write(text string) {
	w.Content = text
	w.Standout = false
	w.Ops = append(w.Ops, "write:"+text)
}

// WriteStandout implements grid.Window.
func (w *FakeWindow) WriteStandout(text string) {
	w.Content = text
	w.Standout = true
	w.Ops = append(w.Ops, "standout:"+text)
}

// Clear implements grid.Window.
func (w *FakeWindow) Clear() {
	w.Content = ""
	w.Standout = false
	w.Ops = append(w.Ops, "clear")
}

// ReadKey implements grid.Window.
func (w *FakeWindow) ReadKey() (grid.Key, error) {
	s := w.surface
	if len(s.keys) == 0 {
		return "", grid.ErrSurfaceClosed
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

// Close implements grid.Window.
func (w *FakeWindow) Close() {
	w.Closed = true
}

// ResetOps forgets recorded operations.
func (w *FakeWindow) ResetOps() {
	w.Ops = nil
}

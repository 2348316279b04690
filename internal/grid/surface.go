// Package grid holds the display primitives of the browser: cells bound to a
// terminal window, the sparse grid that owns them, and the view that tracks
// which cell is active.
package grid

import "errors"

// ErrSurfaceClosed is returned by Window.ReadKey once the terminal is gone.
var ErrSurfaceClosed = errors.New("terminal surface closed")

// Key is a key press as reported by the terminal, e.g. "q", "enter", "ctrl+c".
type Key string

// String implements fmt.Stringer so keys can be matched with bubbles/key.
func (k Key) String() string { return string(k) }

// Window is one rectangular region of the terminal.
type Window interface {
	// Write replaces the window content with text.
	Write(text string)
	// WriteStandout replaces the window content with text rendered emphasized.
	WriteStandout(text string)
	// Clear blanks the window.
	Clear()
	// ReadKey blocks until a key is pressed.
	ReadKey() (Key, error)
	// Close releases the window. It must not be used afterwards.
	Close()
}

// Surface creates windows on the terminal.
type Surface interface {
	NewWindow(rows, cols, y, x int) Window
}

package tui

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/johan-st/sqlite-grid/internal/grid"
)

// keyBuffer is how many key presses may queue while the navigator is busy.
const keyBuffer = 64

// Screen is a grid.Surface drawn by a bubbletea program. Windows are painted
// in creation order, so later windows cover earlier ones.
//
// Window methods are called from the navigator goroutine; Render and Feed
// from the bubbletea goroutine.
type Screen struct {
	mu      sync.Mutex
	windows []*window

	keys     chan grid.Key
	dirty    chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

// NewScreen creates an empty screen.
func NewScreen() *Screen {
	return &Screen{
		keys:  make(chan grid.Key, keyBuffer),
		dirty: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// NewWindow implements grid.Surface.
func (s *Screen) NewWindow(rows, cols, y, x int) grid.Window {
	w := &window{screen: s, rows: rows, cols: cols, y: y, x: x}
	s.mu.Lock()
	s.windows = append(s.windows, w)
	s.mu.Unlock()
	return w
}

// Feed queues a key press for ReadKey. It reports false if the queue is
// full and the key was dropped.
func (s *Screen) Feed(k grid.Key) bool {
	select {
	case s.keys <- k:
		return true
	default:
		return false
	}
}

// Shutdown makes pending and future ReadKey calls return
// grid.ErrSurfaceClosed.
func (s *Screen) Shutdown() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Dirty is signaled after any window changed.
func (s *Screen) Dirty() <-chan struct{} {
	return s.dirty
}

// Done is closed by Shutdown.
func (s *Screen) Done() <-chan struct{} {
	return s.done
}

func (s *Screen) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// Render draws the windows into height lines of at most width terminal
// columns. Positions and clipping count display width, so a wide rune takes
// two columns.
func (s *Screen) Render(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	type span struct {
		x        int
		text     string
		standout bool
	}
	lines := make([][]span, height)

	s.mu.Lock()
	for _, w := range s.windows {
		if w.text == "" {
			continue
		}
		for i, line := range strings.Split(w.text, "\n") {
			y := w.y + i
			if i >= w.rows || y < 0 || y >= height {
				break
			}
			text := runewidth.Truncate(line, w.cols, "")
			lines[y] = append(lines[y], span{x: w.x, text: text, standout: w.standout})
		}
	}
	s.mu.Unlock()

	out := make([]string, height)
	for y, spans := range lines {
		row := newRow(width)
		for _, sp := range spans {
			x := sp.x
			for _, r := range sp.text {
				rw := runewidth.RuneWidth(r)
				if rw == 0 {
					continue
				}
				if x >= 0 && x+rw <= width {
					row.put(x, r, rw, sp.standout)
				}
				x += rw
				if x >= width {
					break
				}
			}
		}
		out[y] = row.paint()
	}
	return out
}

// row is one painted screen line. Each column holds the rune drawn there;
// the second column of a wide rune holds an empty string.
type row struct {
	cells    []string
	standout []bool
}

func newRow(width int) *row {
	r := &row{cells: make([]string, width), standout: make([]bool, width)}
	for i := range r.cells {
		r.cells[i] = " "
	}
	return r
}

// put draws r, rw columns wide, at x. Wide runes it partly covers are
// blanked.
func (l *row) put(x int, r rune, rw int, standout bool) {
	for i := x; i < x+rw; i++ {
		if l.cells[i] == "" && i > 0 {
			l.cells[i-1] = " "
		}
	}
	if end := x + rw; end < len(l.cells) && l.cells[end] == "" {
		l.cells[end] = " "
	}
	l.cells[x] = string(r)
	for i := x; i < x+rw; i++ {
		if i > x {
			l.cells[i] = ""
		}
		l.standout[i] = standout
	}
}

// paint renders runs of plain and standout columns, trailing blanks trimmed.
func (l *row) paint() string {
	end := len(l.cells)
	for end > 0 && l.cells[end-1] == " " && !l.standout[end-1] {
		end--
	}

	var b strings.Builder
	for i := 0; i < end; {
		j := i
		for j < end && l.standout[j] == l.standout[i] {
			j++
		}
		run := strings.Join(l.cells[i:j], "")
		if l.standout[i] {
			run = standoutStyle.Render(run)
		}
		b.WriteString(run)
		i = j
	}
	return b.String()
}

// window is one region of a Screen.
type window struct {
	screen     *Screen
	rows, cols int
	y, x       int

	// Guarded by screen.mu.
	text     string
	standout bool
}

func (w *window) set(text string, standout bool) {
	w.screen.mu.Lock()
	w.text = text
	w.standout = standout
	w.screen.mu.Unlock()
	w.screen.markDirty()
}

// Write implements grid.Window.
func (w *window) Write(text string) { w.set(text, false) }

// WriteStandout implements grid.Window.
func (w *window) WriteStandout(text string) { w.set(text, true) }

// Clear implements grid.Window.
func (w *window) Clear() { w.set("", false) }

// ReadKey implements grid.Window. Keys are not scoped to a window: the
// terminal has one keyboard and only the active cell reads from it.
func (w *window) ReadKey() (grid.Key, error) {
	select {
	case k := <-w.screen.keys:
		return k, nil
	case <-w.screen.done:
		return "", grid.ErrSurfaceClosed
	}
}

// Close implements grid.Window.
func (w *window) Close() {
	s := w.screen
	s.mu.Lock()
	for i, other := range s.windows {
		if other == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.markDirty()
}

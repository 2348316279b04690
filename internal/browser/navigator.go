package browser

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"

	"github.com/johan-st/sqlite-grid/internal/grid"
)

// OutcomeKind says whether the dispatch loop keeps going.
type OutcomeKind int

const (
	Continue OutcomeKind = iota
	Terminate
	Error
)

func (k OutcomeKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Terminate:
		return "terminate"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the result of dispatching one key.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// Transition describes the view on top of the stack after a push or pop.
// Depth is zero once the last view has been popped.
type Transition struct {
	Kind  grid.Kind
	Title string
	Depth int
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithKeyMap sets the key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(n *Navigator) { n.keys = k }
}

// WithLogger sets the navigator's logger.
func WithLogger(l *log.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// OnTransition registers fn to be called after every push and pop, on the
// navigator's goroutine.
func OnTransition(fn func(Transition)) Option {
	return func(n *Navigator) { n.onTransition = fn }
}

// Navigator owns the stack of views and turns key presses into moves,
// descents and returns. It is not safe for concurrent use.
type Navigator struct {
	factory *Factory
	keys    KeyMap
	stack   []*grid.View
	width   int
	height  int
	logger  *log.Logger

	onTransition func(Transition)
}

// New creates a Navigator showing the table list.
func New(factory *Factory, width, height int, opts ...Option) (*Navigator, error) {
	n := &Navigator{
		factory: factory,
		keys:    DefaultKeyMap(),
		width:   width,
		height:  height,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(n)
	}

	v, err := factory.TableList(width, height)
	if err != nil {
		return nil, err
	}
	n.push(v)
	return n, nil
}

// Depth returns the number of views on the stack.
func (n *Navigator) Depth() int { return len(n.stack) }

// Top returns the view on top of the stack, or nil once it is empty.
func (n *Navigator) Top() *grid.View {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

// Dispatch handles one key press against the top view.
func (n *Navigator) Dispatch(k grid.Key) Outcome {
	top := n.Top()
	if top == nil {
		return Outcome{Kind: Terminate}
	}

	switch {
	case key.Matches(k, n.keys.Left):
		top.MoveTo(top.Active().Left())
	case key.Matches(k, n.keys.Down):
		top.MoveTo(top.Active().Down())
	case key.Matches(k, n.keys.Up):
		top.MoveTo(top.Active().Up())
	case key.Matches(k, n.keys.Right):
		top.MoveTo(top.Active().Right())
	case key.Matches(k, n.keys.Open):
		return n.open(top)
	case key.Matches(k, n.keys.Quit):
		return n.quit(top)
	case key.Matches(k, n.keys.Exit):
		return n.exit(top)
	}
	return Outcome{Kind: Continue}
}

// Run reads keys from the active cell and dispatches them until the last
// view is popped. It returns nil on a normal exit, the dispatch error, or the
// error that ended key input.
func (n *Navigator) Run() error {
	for {
		top := n.Top()
		if top == nil {
			return nil
		}
		k, err := top.ActiveCell().ReadKey()
		if err != nil {
			return err
		}
		out := n.Dispatch(k)
		switch out.Kind {
		case Terminate:
			return nil
		case Error:
			n.logger.Error("dispatch failed", "key", k, "err", out.Err)
			return out.Err
		}
	}
}

// Close releases every view still on the stack.
func (n *Navigator) Close() {
	for len(n.stack) > 0 {
		n.Top().Close()
		n.stack = n.stack[:len(n.stack)-1]
	}
}

func (n *Navigator) open(top *grid.View) Outcome {
	if top.Kind() != grid.TableList {
		// Cells are read-only.
		return Outcome{Kind: Continue}
	}

	name := top.ActiveCell().Text()
	top.Clear()
	v, err := n.factory.TableDump(name, n.width, n.height)
	if err != nil {
		top.Redraw()
		return Outcome{Kind: Error, Err: err}
	}
	n.push(v)
	return Outcome{Kind: Continue}
}

func (n *Navigator) quit(top *grid.View) Outcome {
	top.Clear()
	top.Close()
	n.stack = n.stack[:len(n.stack)-1]
	n.logger.Debug("pop view", "kind", top.Kind(), "title", top.Title(), "depth", len(n.stack))

	next := n.Top()
	if next == nil {
		n.notify(Transition{Kind: top.Kind(), Depth: 0})
		return Outcome{Kind: Terminate}
	}
	next.Redraw()
	n.notify(Transition{Kind: next.Kind(), Title: next.Title(), Depth: len(n.stack)})
	return Outcome{Kind: Continue}
}

// exit pops every view at once.
func (n *Navigator) exit(top *grid.View) Outcome {
	top.Clear()
	root := n.stack[0].Kind()
	n.Close()
	n.logger.Debug("exit", "from", top.Kind(), "title", top.Title())
	n.notify(Transition{Kind: root, Depth: 0})
	return Outcome{Kind: Terminate}
}

func (n *Navigator) push(v *grid.View) {
	n.stack = append(n.stack, v)
	n.logger.Debug("push view", "kind", v.Kind(), "title", v.Title(), "depth", len(n.stack))
	n.notify(Transition{Kind: v.Kind(), Title: v.Title(), Depth: len(n.stack)})
}

func (n *Navigator) notify(t Transition) {
	if n.onTransition != nil {
		n.onTransition(t)
	}
}

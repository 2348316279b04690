package tui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/johan-st/sqlite-grid/internal/browser"
	"github.com/johan-st/sqlite-grid/internal/grid"
)

// Messages

// refreshMsg is sent when the screen needs repainting.
type refreshMsg struct{}

// navDoneMsg is sent when the navigator loop has returned.
type navDoneMsg struct {
	err error
}

// AppOptions configures an App.
type AppOptions struct {
	// DatabasePath is shown, as a base name, in the status bar.
	DatabasePath string
	// Size is the database file size in bytes.
	Size int64
	// RowCount, if set, is asked for the row count of each opened table.
	RowCount func(table string) (int64, error)
	Keys     browser.KeyMap
	Logger   *log.Logger
}

// App is the bubbletea model around a Screen: it forwards key presses to
// the navigator and draws the screen plus a status bar.
type App struct {
	screen   *Screen
	dbName   string
	size     int64
	rowCount func(string) (int64, error)
	keys     browser.KeyMap
	help     help.Model
	logger   *log.Logger

	// Window size
	width, height int

	// Written by the navigator and watcher goroutines.
	mu      sync.Mutex
	view    browser.Transition
	rows    int64
	changed bool
}

// NewApp creates a new TUI application drawing screen.
func NewApp(screen *Screen, opts AppOptions) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShortSeparator = " "
	return &App{
		screen:   screen,
		dbName:   filepath.Base(opts.DatabasePath),
		size:     opts.Size,
		rowCount: opts.RowCount,
		keys:     opts.Keys,
		help:     h,
		logger:   logger,
		view:     browser.Transition{Kind: grid.TableList, Depth: 1},
		rows:     -1,
	}
}

// SetView records the view on top of the navigator's stack. It is meant to
// be passed to browser.OnTransition.
func (a *App) SetView(t browser.Transition) {
	rows := int64(-1)
	if t.Kind == grid.TableDump && t.Depth > 0 && a.rowCount != nil {
		n, err := a.rowCount(t.Title)
		if err != nil {
			a.logger.Warn("failed to count rows", "table", t.Title, "err", err)
		} else {
			rows = n
		}
	}

	a.mu.Lock()
	a.view = t
	a.rows = rows
	a.mu.Unlock()
	a.screen.markDirty()
}

// MarkChanged flags the database as modified by another process.
func (a *App) MarkChanged() {
	a.mu.Lock()
	a.changed = true
	a.mu.Unlock()
	a.screen.markDirty()
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.waitForDirty()
}

// waitForDirty returns a command that waits for the next screen change.
func (a *App) waitForDirty() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.screen.Dirty():
			return refreshMsg{}
		case <-a.screen.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		a.feed(msg)
		return a, nil

	case refreshMsg:
		return a, a.waitForDirty()

	case navDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, grid.ErrSurfaceClosed) {
			a.logger.Error("navigator stopped", "err", msg.err)
		}
		return a, tea.Quit
	}
	return a, nil
}

// feed forwards a key press. Runes typed faster than a frame arrive as one
// message and are split so each is dispatched on its own.
func (a *App) feed(msg tea.KeyMsg) {
	keys := []grid.Key{grid.Key(msg.String())}
	if msg.Type == tea.KeyRunes && !msg.Paste && len(msg.Runes) > 1 {
		keys = keys[:0]
		for _, r := range msg.Runes {
			k := string(r)
			if msg.Alt {
				k = "alt+" + k
			}
			keys = append(keys, grid.Key(k))
		}
	}
	for _, k := range keys {
		if !a.screen.Feed(k) {
			a.logger.Warn("dropped key press", "key", k)
		}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	lines := a.screen.Render(a.width, a.height-1)
	lines = append(lines, a.renderStatusBar())
	return strings.Join(lines, "\n")
}

func (a *App) renderStatusBar() string {
	a.mu.Lock()
	view, rows, changed := a.view, a.rows, a.changed
	a.mu.Unlock()

	var leftParts []string
	var rightParts []string

	// Left side: title, database and what is shown
	leftParts = append(leftParts, titleStyle.Render("sqlite-grid"))
	leftParts = append(leftParts, statusKeyStyle.Render(a.dbName))
	leftParts = append(leftParts, dimItemStyle.Render(humanize.Bytes(uint64(max(a.size, 0)))))

	switch {
	case view.Kind == grid.TableDump && view.Title != "":
		leftParts = append(leftParts, statusValueStyle.Render("> "+view.Title))
		if rows >= 0 {
			leftParts = append(leftParts, dimItemStyle.Render(fmt.Sprintf("| %s rows", humanize.Comma(rows))))
		}
	default:
		leftParts = append(leftParts, statusValueStyle.Render("> "+view.Kind.String()))
	}
	if changed {
		leftParts = append(leftParts, noticeStyle.Render("changed on disk"))
	}

	// Right side: key help
	rightParts = append(rightParts, a.help.ShortHelpView(a.keys.ShortHelp()))

	leftContent := strings.Join(leftParts, " ")
	rightContent := strings.Join(rightParts, " ")

	// Calculate padding between left and right
	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	padding := a.width - leftWidth - rightWidth - 2 // -2 for statusBar padding
	if padding < 1 {
		// Not enough room for help.
		rightContent = ""
		padding = 1
	}

	content := leftContent + strings.Repeat(" ", padding) + rightContent
	return statusBarStyle.Width(a.width).MaxWidth(a.width).MaxHeight(1).Render(content)
}

// Package tui runs the browser in a terminal: a bubbletea program paints
// the cell windows the navigator writes to and feeds it key presses.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johan-st/sqlite-grid/internal/browser"
	"github.com/johan-st/sqlite-grid/internal/grid"
)

// Run starts the terminal program and the navigator loop, and returns when
// either ends. It returns the navigator's error, or nil when the user quit.
func Run(app *App, nav *browser.Navigator, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(app, opts...)

	navErr := make(chan error, 1)
	go func() {
		err := nav.Run()
		nav.Close()
		navErr <- err
		p.Send(navDoneMsg{err: err})
	}()

	_, runErr := p.Run()
	app.screen.Shutdown()
	err := <-navErr

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal: %w", runErr)
	}
	if errors.Is(err, grid.ErrSurfaceClosed) {
		return nil
	}
	return err
}

// Package tui is the interactive task browser. Every mutation goes
// through the same command layer as the CLI, so the local numbers shown
// here match the ones printed by the other front ends.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dwaring87/rtm-api/internal/adapters/tui/views"
	"github.com/dwaring87/rtm-api/internal/application/commands"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewAdd
)

// App is the main TUI application model
type App struct {
	state   ViewState
	browser *views.BrowserModel
	add     *views.AddModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(deps commands.Deps) *App {
	return &App{
		state:   ViewBrowser,
		browser: views.NewBrowserModel(deps),
		add:     views.NewAddModel(deps),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.add.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToAddMsg:
		a.state = ViewAdd
		return a, a.add.Init()

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.AddSuccessMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewAdd:
		_, cmd = a.add.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewAdd {
		return a.add.View()
	}
	return a.browser.View()
}

package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dwaring87/rtm-api/internal/adapters/tui/styles"
	"github.com/dwaring87/rtm-api/internal/application/commands"
	"github.com/dwaring87/rtm-api/internal/domain"
)

// BrowserKeyMap defines key bindings for the task browser
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Delete   key.Binding
	Postpone key.Binding
	New      key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Postpone: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "postpone"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the task list view
type BrowserModel struct {
	deps       commands.Deps
	rows       []commands.TaskRow
	fromCache  bool
	loaded     bool
	cursor     int
	width      int
	height     int
	message    string
	messageErr bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(deps commands.Deps) *BrowserModel {
	return &BrowserModel{deps: deps}
}

// Init paints the cached snapshot immediately and refreshes in the
// background. Each network call is paced by the client's scheduler.
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(true), m.loadTasks(false))
}

func (m *BrowserModel) loadTasks(cached bool) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewListTasksCommand(m.deps, "", cached, false)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{result}
	}
}

type tasksLoadedMsg struct {
	result *commands.ListTasksResult
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		// A stale cache paint must not clobber a fresh fetch.
		if m.loaded && !m.fromCache && msg.result.FromCache {
			return m, nil
		}
		m.rows = msg.result.Rows
		m.fromCache = msg.result.FromCache
		m.loaded = true
		m.clampCursor()
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		m.messageErr = true
		return m, nil

	case successMsg:
		m.message = msg.message
		m.messageErr = false
		return m, m.loadTasks(false)

	case tea.KeyMsg:
		m.message = ""

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Complete):
			if row := m.selectedRow(); row != nil {
				return m, m.runAction(func(ctx context.Context) (*commands.TaskActionResult, error) {
					return commands.NewCompleteTaskCommand(m.deps, row.Index).Execute(ctx)
				})
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Delete):
			if row := m.selectedRow(); row != nil {
				return m, m.runAction(func(ctx context.Context) (*commands.TaskActionResult, error) {
					return commands.NewDeleteTaskCommand(m.deps, row.Index).Execute(ctx)
				})
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Postpone):
			if row := m.selectedRow(); row != nil {
				return m, m.runAction(func(ctx context.Context) (*commands.TaskActionResult, error) {
					return commands.NewPostponeTaskCommand(m.deps, row.Index).Execute(ctx)
				})
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.New):
			return m, func() tea.Msg {
				return SwitchToAddMsg{}
			}

		case key.Matches(msg, BrowserKeys.Refresh):
			return m, m.loadTasks(false)
		}
	}

	return m, nil
}

func (m *BrowserModel) runAction(fn func(context.Context) (*commands.TaskActionResult, error)) tea.Cmd {
	return func() tea.Msg {
		result, err := fn(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

func (m *BrowserModel) selectedRow() *commands.TaskRow {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return &m.rows[m.cursor]
	}
	return nil
}

func (m *BrowserModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded {
		return styles.App.Render("Loading...")
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("Tasks"))
	b.WriteString("\n")
	if m.fromCache {
		b.WriteString(styles.Subtitle.Render("cached snapshot, refreshing..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.MutedText.Render("No tasks."))
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		b.WriteString(m.renderRow(row, i == m.cursor))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		if m.messageErr {
			b.WriteString(styles.ErrorMsg.Render(m.message))
		} else {
			b.WriteString(styles.Success.Render(m.message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderRow(row commands.TaskRow, selected bool) string {
	t := row.Task

	var parts []string
	parts = append(parts, styles.RowIndex.Render(fmt.Sprintf("#%-3d", row.Index)))

	if t.Priority != domain.PriorityNone {
		parts = append(parts, priorityStyle(t.Priority).Render("!"+t.Priority.String()))
	}

	name := t.Name
	nameStyle := lipgloss.NewStyle()
	switch {
	case selected:
		nameStyle = styles.RowSelected
	case t.IsCompleted():
		nameStyle = styles.RowCompleted
	case t.IsOverdue(time.Now()):
		nameStyle = styles.RowOverdue
	}
	parts = append(parts, nameStyle.Render(name))

	if !t.Due.IsZero() {
		layout := "2006-01-02"
		if t.HasDueTime {
			layout = "2006-01-02 15:04"
		}
		parts = append(parts, styles.Due.Render("due "+t.Due.Format(layout)))
	}
	if len(t.Tags) > 0 {
		parts = append(parts, styles.Tag.Render("#"+strings.Join(t.Tags, " #")))
	}

	return strings.Join(parts, " ")
}

func priorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return styles.PriorityHigh
	case domain.PriorityMid:
		return styles.PriorityMedium
	default:
		return styles.PriorityLow
	}
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"c", "complete"},
		{"p", "postpone"},
		{"d", "delete"},
		{"n", "new"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload refetches the task list from the service
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadTasks(false)
}

// Messages for view switching
type SwitchToAddMsg struct{}

type SwitchToBrowserMsg struct{}

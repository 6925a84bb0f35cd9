package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dwaring87/rtm-api/internal/adapters/tui/styles"
	"github.com/dwaring87/rtm-api/internal/application/commands"
)

// AddKeyMap defines key bindings for the add-task view
type AddKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var AddKeys = AddKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// AddModel is the model for the add-task input view. The name is sent
// with smart-add parsing on, so due dates and !priority work inline.
type AddModel struct {
	deps    commands.Deps
	input   textinput.Model
	width   int
	height  int
	message string
}

// NewAddModel creates a new add-task model
func NewAddModel(deps commands.Deps) *AddModel {
	ti := textinput.New()
	ti.Placeholder = "Pick up milk tomorrow !1 #errand"
	ti.CharLimit = 200
	ti.Width = 60

	return &AddModel{deps: deps, input: ti}
}

// Init focuses the input
func (m *AddModel) Init() tea.Cmd {
	m.input.SetValue("")
	m.message = ""
	return m.input.Focus()
}

// AddSuccessMsg is emitted after the task was created
type AddSuccessMsg struct {
	Message string
}

// Update handles messages for the add view
func (m *AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, AddKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, AddKeys.Submit):
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.message = "task name is required"
				return m, nil
			}
			return m, m.addTask(name)
		}

	case errMsg:
		m.message = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *AddModel) addTask(name string) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewAddTaskCommand(m.deps, name, true).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return AddSuccessMsg{Message: result.Message}
	}
}

// View renders the add view
func (m *AddModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New task"))
	b.WriteString("\n\n")
	b.WriteString(styles.InputLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(styles.InputField.Render(m.input.View()))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("enter"))
	b.WriteString(styles.HelpDesc.Render(" add"))
	b.WriteString(styles.HelpSeparator.String())
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" cancel"))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *AddModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 8 {
		m.input.Width = width - 8
	}
}

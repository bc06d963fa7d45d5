package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SaveStatus represents the state of a save shown by the display.
type SaveStatus string

const (
	StatusSaving SaveStatus = "saving"
	StatusSaved  SaveStatus = "saved"
	StatusFailed SaveStatus = "failed"
)

// SavingLabel is shown while a save is in progress.
const SavingLabel = "Saving contact to database..."

// SaveStartMsg signals that saving a contact has begun.
type SaveStartMsg struct {
	Name string
}

// SaveDoneMsg signals that the contact was stored.
type SaveDoneMsg struct {
	Name string
}

// SaveErrorMsg signals that storing the contact failed.
type SaveErrorMsg struct {
	Name string
	Err  error
}

// Model is the Bubble Tea model for a single save's progress line.
type Model struct {
	spinner spinner.Model
	styles  Styles
	name    string
	status  SaveStatus
	err     error
	done    bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithModelStyles sets the styles used by View.
func WithModelStyles(s Styles) ModelOption {
	return func(m *Model) {
		m.styles = s
	}
}

// NewModel creates a Model in the saving state.
func NewModel(opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		spinner: s,
		styles:  PlainStyles(),
		status:  StatusSaving,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SaveStartMsg:
		m.name = msg.Name
		m.status = StatusSaving
		return m, nil

	case SaveDoneMsg:
		m.name = msg.Name
		m.status = StatusSaved
		m.done = true
		return m, tea.Quit

	case SaveErrorMsg:
		m.status = StatusFailed
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner while saving, then the outcome line.
func (m Model) View() string {
	switch m.status {
	case StatusSaved:
		return SuccessLine(m.styles, m.name) + "\n"
	case StatusFailed:
		return FailureLine(m.styles, m.err) + "\n"
	default:
		return fmt.Sprintf("%s %s\n", m.spinner.View(), SavingLabel)
	}
}

// SuccessLine renders the confirmation for a stored contact.
func SuccessLine(s Styles, name string) string {
	return s.Success.Render("✓ Contact "+s.Bold.Render(name)+" saved successfully!")
}

// FailureLine renders the failure notice followed by the underlying error.
func FailureLine(s Styles, err error) string {
	line := s.Error.Render("✗ Failed to save contact.")
	if err != nil {
		line += "\n  " + s.Dim.Render("error: "+err.Error())
	}
	return line
}

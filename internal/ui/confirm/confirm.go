// Package confirm provides a yes/no prompt run as a small bubbletea program.
package confirm

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true).
				Padding(0, 1)
)

var options = [...]string{"Yes", "No"}

// Model is a yes/no prompt. It defaults to No.
type Model struct {
	title    string
	message  string
	selected int // index into options
	answered bool
}

// New creates a prompt with No preselected.
func New(title, message string) Model {
	return Model{title: title, message: message, selected: 1}
}

// Confirmed reports whether the user answered yes.
func (m Model) Confirmed() bool {
	return m.answered && m.selected == 0
}

// Answered reports whether the prompt was closed by a choice rather than
// interrupted.
func (m Model) Answered() bool {
	return m.answered
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.answered {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m.answer(0)
	case "n", "N", "esc", "q":
		return m.answer(1)
	case "ctrl+c":
		return m, tea.Quit
	case "left", "h", "right", "l", "tab", "shift+tab":
		m.selected = 1 - m.selected
	case "enter":
		return m.answer(m.selected)
	}
	return m, nil
}

func (m Model) answer(option int) (tea.Model, tea.Cmd) {
	m.selected = option
	m.answered = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if m.answered {
		return ""
	}

	rendered := make([]string, len(options))
	for i, opt := range options {
		style := optionStyle
		if i == m.selected {
			style = selectedOptionStyle
		}
		rendered[i] = style.Render(opt)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("y/n, ←/→ to choose, enter to confirm"))
	b.WriteString("\n")
	return b.String()
}

// Ask runs the prompt on the given terminal streams and returns the answer.
// An interrupted prompt counts as no.
func Ask(title, message string, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(New(title, message), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.Confirmed(), nil
}

// Package submitview renders a small inline progress view while a
// transaction moves through the sign-and-broadcast pipeline. It is only
// used on interactive terminals; non-TTY callers invoke the pipeline
// directly.
package submitview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// doneMsg signals that the pipeline returned.
type doneMsg struct{}

type model struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newModel(label string) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return model{spinner: s, label: label}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// The pipeline cannot be cancelled mid-flight without leaving
		// an ambiguous outcome, so keys are ignored until it returns.
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.label)
}

// Run executes fn while showing a spinner with the given label, and
// returns fn's result. fn runs exactly once; if the terminal program
// cannot start, the view is skipped but the result is still returned.
func Run[T any](label string, fn func() (T, error)) (T, error) {
	var result T
	var resultErr error

	done := make(chan struct{})
	p := tea.NewProgram(newModel(label))

	go func() {
		defer close(done)
		result, resultErr = fn()
		p.Send(doneMsg{})
	}()

	_, _ = p.Run()
	<-done
	return result, resultErr
}

// Package tui provides the progress display for long-running batch work.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tickMsg carries the number of completed work items.
type tickMsg int

// doneMsg signals the work function has returned.
type doneMsg struct{}

var progressLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// progressModel renders a single progress bar over a known item total.
type progressModel struct {
	label    string
	bar      progress.Model
	done     int
	total    int
	finished bool
}

func newProgressModel(label string, total int) progressModel {
	return progressModel{
		label: label,
		bar:   progress.New(progress.WithDefaultGradient()),
		total: total,
	}
}

// Init implements tea.Model.
func (m progressModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 8
		return m, nil

	case tickMsg:
		m.done = int(msg)
		if m.total > 0 {
			return m, m.bar.SetPercent(float64(m.done) / float64(m.total))
		}
		return m, nil

	case doneMsg:
		m.finished = true
		return m, tea.Quit

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	counter := progressLabelStyle.Render(fmt.Sprintf("%d/%d", m.done, m.total))
	return fmt.Sprintf("%s\n%s %s\n", m.label, m.bar.View(), counter)
}

// RunWithProgress executes work while displaying a progress bar. The work
// function reports completed item counts through the supplied callback. When
// the display cannot start (no TTY), work still runs, just silently.
func RunWithProgress(label string, total int, work func(report func(done int)) error) error {
	program := tea.NewProgram(newProgressModel(label, total))

	errCh := make(chan error, 1)
	go func() {
		errCh <- work(func(done int) {
			program.Send(tickMsg(done))
		})
		program.Send(doneMsg{})
	}()

	if _, err := program.Run(); err != nil {
		// Degrade to running without a display.
		return <-errCh
	}
	return <-errCh
}

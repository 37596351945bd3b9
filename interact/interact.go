// Package interact shows render progress in the terminal.
package interact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/go-raytracer/tracer"
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ErrAborted is returned when the user quits before the render finishes.
var ErrAborted = errors.New("render aborted")

type rowMsg struct {
	done, total int
}

type doneMsg struct {
	err error
}

type model struct {
	title    string
	bar      progress.Model
	done     int
	total    int
	start    time.Time
	finished bool
	err      error
	cancel   context.CancelFunc
}

func newModel(title string, total int, cancel context.CancelFunc) model {
	return model{
		title:  title,
		bar:    progress.New(progress.WithDefaultGradient()),
		total:  total,
		start:  time.Now(),
		cancel: cancel,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.cancel()
			m.err = ErrAborted
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, _ := docStyle.GetFrameSize()
		m.bar.Width = max(10, msg.Width-h)
	case rowMsg:
		m.done, m.total = msg.done, msg.total
		return m, m.bar.SetPercent(m.fraction())
	case doneMsg:
		m.finished = true
		if m.err == nil {
			m.err = msg.err
		}
		return m, tea.Quit
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m model) fraction() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

func (m model) View() string {
	status := fmt.Sprintf("%d/%d rows  %s", m.done, m.total, time.Since(m.start).Round(time.Second))
	if m.finished {
		status += "  done"
	}
	return docStyle.Render(titleStyle.Render(m.title) + "\n\n" +
		m.bar.View() + "\n\n" +
		status + "\n" +
		helpStyle.Render("q: abort"))
}

// Render runs render while a progress bar tracks the rows it reports.
// Quitting the display cancels the context handed to render. Render returns
// only after render has, so nothing is left writing to the output.
func Render(ctx context.Context, title string, total int, render func(context.Context, tracer.ProgressFunc) error, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(title, total, cancel), opts...)
	result := make(chan error, 1)
	go func() {
		err := render(ctx, func(done, total int) {
			p.Send(rowMsg{done: done, total: total})
		})
		result <- err
		p.Send(doneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-result
		return fmt.Errorf("running display: %w", err)
	}
	rerr := <-result
	if err := final.(model).err; err != nil {
		return err
	}
	return rerr
}

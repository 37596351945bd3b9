package interact

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/jdginn/go-raytracer/tracer"
)

func TestModel(t *testing.T) {
	assert := assert.New(t)
	cancelled := false
	var m tea.Model = newModel("ball.sdf", 10, func() { cancelled = true })

	m, cmd := m.Update(rowMsg{done: 3, total: 10})
	assert.NotNil(cmd)
	assert.Equal(3, m.(model).done)
	assert.InDelta(0.3, m.(model).fraction(), 1e-12)
	assert.Contains(m.View(), "3/10 rows")
	assert.Contains(m.View(), "ball.sdf")

	boom := errors.New("boom")
	m, cmd = m.Update(doneMsg{err: boom})
	assert.NotNil(cmd)
	assert.True(m.(model).finished)
	assert.Equal(boom, m.(model).err)
	assert.False(cancelled)
}

func TestModelAbort(t *testing.T) {
	assert := assert.New(t)
	cancelled := false
	var m tea.Model = newModel("ball.sdf", 10, func() { cancelled = true })

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(cmd)
	assert.True(cancelled)
	assert.ErrorIs(m.(model).err, ErrAborted)

	// A late completion does not hide the abort
	m, _ = m.Update(doneMsg{})
	assert.ErrorIs(m.(model).err, ErrAborted)
}

func TestFractionEmpty(t *testing.T) {
	assert.Equal(t, 1.0, newModel("", 0, func() {}).fraction())
}

func TestRenderWaitsForAbortedRender(t *testing.T) {
	assert := assert.New(t)
	var returned atomic.Bool
	render := func(ctx context.Context, progress tracer.ProgressFunc) error {
		progress(1, 10)
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
			return errors.New("display never cancelled the render")
		}
		// rows already in flight still finish
		time.Sleep(20 * time.Millisecond)
		returned.Store(true)
		return ctx.Err()
	}

	err := Render(context.Background(), "ball.sdf", 10, render,
		tea.WithInput(strings.NewReader("q")), tea.WithOutput(io.Discard))
	assert.ErrorIs(err, ErrAborted)
	assert.True(returned.Load())
}

func TestRenderReportsRenderError(t *testing.T) {
	boom := errors.New("boom")
	err := Render(context.Background(), "ball.sdf", 10, func(context.Context, tracer.ProgressFunc) error {
		return boom
	}, tea.WithInput(strings.NewReader("")), tea.WithOutput(io.Discard))
	assert.ErrorIs(t, err, boom)
}

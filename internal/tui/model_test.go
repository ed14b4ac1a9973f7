package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelanes/internal/config"
	"timelanes/internal/timeline"
)

func mustTask(t *testing.T, id, name, start, end string) timeline.Task {
	t.Helper()
	s, err := timeline.ParseDate(start)
	require.NoError(t, err)
	e, err := timeline.ParseDate(end)
	require.NoError(t, err)
	task, err := timeline.NewTask(id, name, s, e)
	require.NoError(t, err)
	return task
}

// newModel returns a viewer over two lanes: [a] and [b, c].
func newModel(t *testing.T) (Model, []timeline.Task) {
	t.Helper()
	tasks := []timeline.Task{
		mustTask(t, "a", "Design", "2024-01-01", "2024-01-03"),
		mustTask(t, "b", "Build", "2024-01-02", "2024-01-04"),
		mustTask(t, "c", "Ship", "2024-01-06", "2024-01-11"),
	}
	return New(tasks, config.Default()), tasks
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestZoomKeys(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, "+")
	assert.InDelta(t, 1.2, m.ViewState().Zoom, 1e-9)
	assert.InDelta(t, 1.2, m.result.Zoom, 1e-9, "layout follows the zoom")

	m = press(t, m, "-", "-")
	assert.InDelta(t, 1/1.2, m.ViewState().Zoom, 1e-9)

	m = press(t, m, "0")
	assert.Equal(t, 1.0, m.ViewState().Zoom)

	m = press(t, m, "+")
	assert.Equal(t, timeline.Layout(m.Tasks(), m.ViewState()), m.Result())

	for i := 0; i < 10; i++ {
		m = press(t, m, "=")
	}
	assert.Equal(t, timeline.DefaultMaxZoom, m.ViewState().Zoom)
}

func TestSelection(t *testing.T) {
	m, _ := newModel(t)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "a", m.Selected().ID)

	m = press(t, m, "down")
	assert.Equal(t, "b", m.Selected().ID)
	m = press(t, m, "down", "down")
	assert.Equal(t, "c", m.Selected().ID)
	m = press(t, m, "up")
	assert.Equal(t, "b", m.Selected().ID)
}

func TestRename(t *testing.T) {
	m, tasks := newModel(t)

	m = press(t, m, "down", "e")
	assert.Equal(t, "b", m.ViewState().Editing)
	assert.Equal(t, "Build", m.input.Value())

	m = press(t, m, "!", "enter")
	assert.Empty(t, m.ViewState().Editing)
	assert.Equal(t, "Build!", m.Tasks()[1].Name)
	assert.Equal(t, "Build", tasks[1].Name, "input tasks are not modified")
	assert.Equal(t, "Build!", m.Selected().Name)
	assert.False(t, m.failed)

	// Geometry is unchanged by a rename.
	require.Len(t, m.result.Lanes, 2)
	assert.Equal(t, "b", m.result.Lanes[1].Bars[0].Task.ID)
}

func TestRenameRejectsEmptyName(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, "e")
	m.input.SetValue("   ")
	m = press(t, m, "enter")

	assert.Equal(t, "a", m.ViewState().Editing, "still editing")
	assert.True(t, m.failed)
	assert.Equal(t, "Name cannot be empty", m.status)
	assert.Equal(t, "Design", m.Tasks()[0].Name)
}

func TestRenameCancel(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, "enter")
	assert.Equal(t, "a", m.ViewState().Editing)
	m.input.SetValue("Something else")
	m = press(t, m, "esc")

	assert.Empty(t, m.ViewState().Editing)
	assert.Equal(t, "Design", m.Tasks()[0].Name)
	assert.Empty(t, m.input.Value())
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// While editing, q is text.
	m = press(t, m, "e", "q")
	assert.Equal(t, "Designq", m.input.Value())
}

func TestWindowSize(t *testing.T) {
	m, _ := newModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	assert.Equal(t, 800.0, m.ViewState().ViewportWidth)
	assert.Equal(t, 640.0, m.result.TimelineWidth)
	assert.Equal(t, 94, m.columns())
}

func TestScroll(t *testing.T) {
	m, _ := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	m = press(t, m, "right")
	assert.Equal(t, 0, m.offset, "content fits, nothing to scroll")

	m = press(t, m, "+", "+", "+", "+", "+")
	require.Positive(t, m.maxOffset())
	m = press(t, m, "right")
	assert.Equal(t, scrollStep, m.offset)
	m = press(t, m, "left", "left")
	assert.Equal(t, 0, m.offset)
}

func TestView(t *testing.T) {
	m, _ := newModel(t)
	out := m.View()

	assert.Contains(t, out, "3 tasks · 2 lanes · zoom 100%")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Ship")
	assert.Contains(t, out, "Design (2024-01-01 to 2024-01-03)")
	assert.Contains(t, out, "Jan 1")
	assert.Contains(t, out, "q quit")

	m = press(t, m, "e")
	assert.Contains(t, m.View(), "enter save")
}

func TestEmpty(t *testing.T) {
	m := New(nil, config.Default())
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "No tasks")

	m = press(t, m, "e", "down", "+")
	assert.Empty(t, m.ViewState().Editing)
}

// Package tui is the interactive terminal viewer: it draws the lane layout
// in character cells and lets the user zoom, scroll and rename tasks.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timelanes/internal/config"
	"timelanes/internal/debug"
	"timelanes/internal/render"
	"timelanes/internal/timeline"
)

// gutter is the width of the lane number column plus both frame runes.
const gutter = 6

// scrollStep is the number of columns moved per scroll key.
const scrollStep = 8

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	barStyle      = lipgloss.NewStyle().Background(lipgloss.Color("25")).Foreground(lipgloss.Color("15"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0")).Bold(true)
	editingStyle  = lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("15"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model of the viewer. Tasks are never modified in
// place: a rename swaps in a renamed copy and lays it out again.
type Model struct {
	cfg    config.Config
	keys   keyMap
	tasks  []timeline.Task
	view   timeline.ViewState
	result timeline.Result
	order  []*timeline.Task

	selected int
	offset   int
	width    int
	height   int

	input  textinput.Model
	status string
	failed bool
}

// New returns a viewer over tasks using the zoom and layout settings of cfg.
func New(tasks []timeline.Task, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		cfg:    cfg,
		keys:   defaultKeyMap(),
		tasks:  tasks,
		view:   cfg.ViewState(),
		input:  ti,
		status: "Press 'e' to rename the selected task, +/- to zoom.",
	}
	m.relayout()
	return m
}

// Run starts the viewer and blocks until the user quits. It returns the
// model as it is when the viewer closes: renames, zoom and viewport
// included.
func Run(tasks []timeline.Task, cfg config.Config) (Model, error) {
	start := New(tasks, cfg)
	program := tea.NewProgram(start, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return start, err
	}
	if m, ok := final.(Model); ok {
		return m, nil
	}
	return start, nil
}

// Tasks returns the current tasks.
func (m Model) Tasks() []timeline.Task {
	return m.tasks
}

// ViewState returns the current view state.
func (m Model) ViewState() timeline.ViewState {
	return m.view
}

// Result returns the layout currently on screen.
func (m Model) Result() timeline.Result {
	return m.result
}

// Selected returns the selected task, or nil if there are no tasks.
func (m Model) Selected() *timeline.Task {
	if m.selected < 0 || m.selected >= len(m.order) {
		return nil
	}
	return m.order[m.selected]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view = m.view.WithViewport(float64(m.width) * render.PixelsPerCell)
		m.input.Width = max(10, msg.Width-20)
		m.relayout()
		return m, nil
	case tea.KeyMsg:
		if m.view.Editing != "" {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ZoomIn):
		m.view = m.view.ZoomIn()
		m.relayout()
	case key.Matches(msg, m.keys.ZoomOut):
		m.view = m.view.ZoomOut()
		m.relayout()
	case key.Matches(msg, m.keys.ZoomReset):
		m.view = m.view.WithZoom(timeline.DefaultZoom)
		m.relayout()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.follow()
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.order)-1 {
			m.selected++
		}
		m.follow()
	case key.Matches(msg, m.keys.Left):
		m.offset = max(0, m.offset-scrollStep)
	case key.Matches(msg, m.keys.Right):
		m.offset = min(m.maxOffset(), m.offset+scrollStep)
	case key.Matches(msg, m.keys.Edit):
		task := m.Selected()
		if task == nil {
			return m, nil
		}
		m.view = m.view.WithEditing(task.ID)
		m.input.SetValue(task.Name)
		m.input.CursorEnd()
		m.setStatus(fmt.Sprintf("Renaming %s", task.ID), false)
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		m.setStatus("Cancelled", false)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.setStatus("Name cannot be empty", true)
			return m, nil
		}
		id := m.view.Editing
		tasks, ok := timeline.Rename(m.tasks, id, name)
		if !ok {
			m.stopEditing()
			m.setStatus(fmt.Sprintf("Task %s no longer exists", id), true)
			return m, nil
		}
		debug.Printf("renamed task %s to %q", id, name)
		m.tasks = tasks
		m.stopEditing()
		m.relayout()
		m.setStatus(fmt.Sprintf("Renamed %s", id), false)
		return m, nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.view = m.view.WithEditing("")
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

// relayout recomputes the layout from the current tasks and view and
// keeps the selection and scroll offset in range.
func (m *Model) relayout() {
	m.result = timeline.Layout(m.tasks, m.view)
	m.order = make([]*timeline.Task, 0, m.result.TaskCount())
	for _, lane := range m.result.Lanes {
		for _, bar := range lane.Bars {
			m.order = append(m.order, bar.Task)
		}
	}
	m.selected = max(0, min(m.selected, len(m.order)-1))
	m.offset = min(m.offset, m.maxOffset())
	m.follow()
}

// follow scrolls so that the start of the selected bar is visible.
func (m *Model) follow() {
	task := m.Selected()
	if task == nil {
		return
	}
	for _, lane := range m.result.Lanes {
		for _, bar := range lane.Bars {
			if bar.Task != task {
				continue
			}
			col := int(math.Floor(bar.Left / render.PixelsPerCell))
			if col < m.offset {
				m.offset = col
			} else if cols := m.columns(); col >= m.offset+cols {
				m.offset = min(m.maxOffset(), col-cols/2)
			}
			return
		}
	}
}

// columns is the number of character cells available for bars.
func (m Model) columns() int {
	if m.width <= gutter {
		return render.Cells(m.contentWidth())
	}
	return m.width - gutter
}

func (m Model) contentWidth() float64 {
	w := m.result.ContentWidth()
	for _, lane := range m.result.Lanes {
		for _, bar := range lane.Bars {
			w = math.Max(w, bar.Right())
		}
	}
	return w
}

func (m Model) maxOffset() int {
	return max(0, render.Cells(m.contentWidth())-m.columns())
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("timelanes"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d tasks · %d lanes · zoom %.0f%%",
		m.result.TaskCount(), len(m.result.Lanes), m.result.Zoom*100)))
	b.WriteString("\n\n")

	if len(m.result.Lanes) == 0 {
		b.WriteString(mutedStyle.Render("No tasks"))
		b.WriteString("\n")
		return b.String()
	}

	cols := m.columns()
	b.WriteString(strings.Repeat(" ", gutter-1))
	b.WriteString(mutedStyle.Render(m.axisRow(cols)))
	b.WriteString("\n")

	selected := m.Selected()
	for _, lane := range m.result.Lanes {
		spans := render.Spans(lane.Bars, m.offset, cols)
		row := render.PaintRow(spans, cols, func(s render.Span, label string) string {
			switch {
			case s.Bar.Task.ID == m.view.Editing:
				return editingStyle.Render(label)
			case s.Bar.Task == selected:
				return selectedStyle.Render(label)
			default:
				return barStyle.Render(label)
			}
		})
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%3d │", lane.Index+1)))
		b.WriteString(row)
		b.WriteString(mutedStyle.Render("│"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if selected != nil {
		b.WriteString(selected.String())
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  [%s] %dd", selected.ID, selected.Days())))
		b.WriteString("\n")
	}
	if m.view.Editing != "" {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(mutedStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help()))
	return b.String()
}

// axisRow places the labelled day markers on a row of cols cells.
func (m Model) axisRow(cols int) string {
	row := []rune(strings.Repeat(" ", cols))
	ticks := timeline.AxisTicks(m.result.Range, m.result.TimelineWidth, m.result.Zoom,
		m.cfg.Axis.LabelFormat, m.cfg.Axis.MinLabelGap)
	next := 0
	for _, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		label := []rune(tick.Label)
		pos := int(math.Floor(tick.X/render.PixelsPerCell)) - m.offset
		if pos < next || pos+len(label) > cols {
			continue
		}
		copy(row[pos:], label)
		next = pos + len(label) + 1
	}
	return string(row)
}

func (m Model) help() string {
	bindings := m.keys.browseHelp()
	if m.view.Editing != "" {
		bindings = m.keys.editHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

package timeline

import (
	"maps"

	"timelanes/internal/debug"
)

// Bar is a task placed on the pixel axis. Left and Width already include
// the zoom factor.
type Bar struct {
	Task  *Task
	Left  float64
	Width float64
}

// Right returns the pixel offset of the bar's right edge.
func (b Bar) Right() float64 {
	return b.Left + b.Width
}

// PlacedLane is a lane together with the geometry of its bars.
type PlacedLane struct {
	Index int
	Bars  []Bar
}

// Result is the output of one layout pass.
type Result struct {
	Range         TimeRange
	TimelineWidth float64
	Zoom          float64
	Lanes         []PlacedLane
}

// ContentWidth is the zoomed width of the whole timeline.
func (r Result) ContentWidth() float64 {
	return r.TimelineWidth * r.Zoom
}

// TaskCount returns the number of placed bars.
func (r Result) TaskCount() int {
	n := 0
	for _, l := range r.Lanes {
		n += len(l.Bars)
	}
	return n
}

// Layout runs a full pass over tasks: time range, lane assignment and
// geometry. Bars reference the elements of tasks, so the slice must not
// be modified while the result is in use.
func Layout(tasks []Task, view ViewState) Result {
	tr := CalculateTimeRange(tasks)
	width := view.TimelineWidth()
	zoom := view.EffectiveZoom()

	debug.Printf("layout: %d tasks, range %s..%s (%d days), width %.1f, zoom %.2f",
		len(tasks), FormatDate(tr.Start), FormatDate(tr.End), tr.TotalDays, width, zoom)

	lanes := AssignLanes(tasks)
	placed := make([]PlacedLane, len(lanes))
	for i, lane := range lanes {
		bars := make([]Bar, len(lane))
		for j, task := range lane {
			bars[j] = Bar{
				Task:  task,
				Left:  Position(task.Start, tr, width) * zoom,
				Width: Width(task.Start, task.End, tr, width) * zoom,
			}
		}
		placed[i] = PlacedLane{Index: i, Bars: bars}
	}

	return Result{
		Range:         tr,
		TimelineWidth: width,
		Zoom:          zoom,
		Lanes:         placed,
	}
}

// Find returns the index of the first task with the given id, or -1.
func Find(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Rename returns a copy of tasks in which every task with the given id
// carries the new name. The input slice and its label maps are left
// untouched. The boolean reports whether any task matched.
func Rename(tasks []Task, id, name string) ([]Task, bool) {
	out := make([]Task, len(tasks))
	copy(out, tasks)

	found := false
	for i := range out {
		out[i].Labels = maps.Clone(out[i].Labels)
		if out[i].ID == id {
			out[i].Name = name
			found = true
		}
	}
	return out, found
}

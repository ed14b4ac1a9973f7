package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"timelanes/internal/timeline"
)

var (
	headerStyle = color.New(color.FgCyan, color.Bold).SprintFunc()
	dateStyle   = color.New(color.Faint).SprintFunc()
	idStyle     = color.New(color.FgYellow).SprintFunc()
	summaryText = color.New(color.Bold).SprintFunc()

	// laneColors are cycled over lanes in charts.
	laneColors = []*color.Color{
		color.New(color.BgBlue, color.FgWhite),
		color.New(color.BgGreen, color.FgBlack),
		color.New(color.BgMagenta, color.FgWhite),
		color.New(color.BgYellow, color.FgBlack),
		color.New(color.BgCyan, color.FgBlack),
		color.New(color.BgRed, color.FgWhite),
	}
)

// Lanes writes a lane-by-lane listing of res followed by a summary line.
// tasks is the input the result was computed from; it is used for the
// concurrency figure.
func Lanes(w io.Writer, res timeline.Result, tasks []timeline.Task) {
	if len(res.Lanes) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}

	nameWidth := 0
	for _, lane := range res.Lanes {
		for _, bar := range lane.Bars {
			nameWidth = max(nameWidth, len([]rune(bar.Task.Name)))
		}
	}

	for _, lane := range res.Lanes {
		fmt.Fprintln(w, headerStyle(fmt.Sprintf("Lane %d", lane.Index+1)))
		for _, bar := range lane.Bars {
			t := bar.Task
			name := t.Name + strings.Repeat(" ", nameWidth-len([]rune(t.Name)))
			fmt.Fprintf(w, "  %s  %s  %3dd  %s\n",
				name,
				dateStyle(timeline.FormatDate(t.Start)+" → "+timeline.FormatDate(t.End)),
				t.Days(),
				idStyle("["+t.ID+"]"))
		}
	}
	fmt.Fprintln(w, Summary(res, tasks))
}

// Summary is the one-line description of a layout used below listings.
func Summary(res timeline.Result, tasks []timeline.Task) string {
	return summaryText(fmt.Sprintf("%d tasks in %d lanes", res.TaskCount(), len(res.Lanes))) +
		fmt.Sprintf(", max concurrency %d, %s to %s (%d days)",
			timeline.MaxConcurrency(tasks),
			timeline.FormatDate(res.Range.Start),
			timeline.FormatDate(res.Range.End),
			res.Range.TotalDays)
}

// Chart writes one character-cell row per lane, cols columns wide.
func Chart(w io.Writer, res timeline.Result, cols int) {
	for _, lane := range res.Lanes {
		c := laneColors[lane.Index%len(laneColors)]
		row := PaintRow(Spans(lane.Bars, 0, cols), cols, func(_ Span, label string) string {
			return c.Sprint(label)
		})
		fmt.Fprintf(w, "%s │%s│\n", dateStyle(fmt.Sprintf("%3d", lane.Index+1)), row)
	}
}

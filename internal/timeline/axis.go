package timeline

import (
	"math"
	"time"
)

// Tick is an axis marker with an optional label.
type Tick struct {
	Date  time.Time
	X     float64
	Label string
}

// AxisTicks returns one marker per day of the range at zoomed pixel
// offsets. A label equal to the previously emitted one, or closer than
// minGap pixels to it, is left empty so that the axis stays readable at
// low zoom. Markers themselves are never dropped.
func AxisTicks(tr TimeRange, timelineWidth, zoom float64, layout string, minGap float64) []Tick {
	if tr.Start.IsZero() && tr.End.IsZero() {
		return nil
	}
	if layout == "" {
		layout = "Jan 2"
	}

	ticks := make([]Tick, 0, tr.TotalDays+1)
	lastLabel := ""
	lastX := math.Inf(-1)
	for d := 0; d <= tr.TotalDays; d++ {
		date := tr.Start.AddDate(0, 0, d)
		x := Position(date, tr, timelineWidth) * zoom
		tick := Tick{Date: date, X: x}

		label := date.Format(layout)
		if label != lastLabel && x-lastX >= minGap {
			tick.Label = label
			lastLabel = label
			lastX = x
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

package timeline

import (
	"math"
	"time"
)

// Bar geometry constants shared with the rendering surfaces.
const (
	// MinBarWidth is the narrowest bar ever drawn, in pixels.
	MinBarWidth = 20.0

	// BarSpacing is subtracted from every bar to leave a gap between
	// neighbouring bars in the same lane.
	BarSpacing = 4.0

	// DefaultTimelineWidth is used when no viewport width is known.
	DefaultTimelineWidth = 800.0
)

// Position returns the horizontal offset in pixels of date within a
// timeline of the given width. The result is never negative. A degenerate
// range places everything at 0.
//
// Zoom is not applied here; callers multiply the result by their zoom factor.
func Position(date time.Time, tr TimeRange, timelineWidth float64) float64 {
	if tr.IsZero() {
		return 0
	}
	daysFromStart := daysBetween(tr.Start, NormalizeDate(date))
	position := float64(daysFromStart) / float64(tr.TotalDays) * timelineWidth
	return math.Max(0, position)
}

// Width returns the bar width in pixels for the inclusive interval
// [start, end]. The inclusive day count is scaled against the range,
// BarSpacing is deducted and the result is floored at MinBarWidth.
// A degenerate range yields MinBarWidth.
func Width(start, end time.Time, tr TimeRange, timelineWidth float64) float64 {
	if tr.IsZero() {
		return MinBarWidth
	}
	durationDays := daysBetween(NormalizeDate(start), NormalizeDate(end)) + 1
	width := float64(durationDays) / float64(tr.TotalDays) * timelineWidth
	return math.Max(MinBarWidth, width-BarSpacing)
}

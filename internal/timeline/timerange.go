package timeline

import "time"

// TimeRange is the calendar span covering a task collection.
// TotalDays is the distance from Start to End in days, not an inclusive
// day count: a range covering a single day has TotalDays == 0.
type TimeRange struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// IsZero reports whether the range is degenerate and must not be used
// as a scale divisor.
func (r TimeRange) IsZero() bool {
	return r.TotalDays == 0
}

// CalculateTimeRange derives the earliest and latest date over all task
// starts and ends. An empty collection yields the zero range.
func CalculateTimeRange(tasks []Task) TimeRange {
	if len(tasks) == 0 {
		return TimeRange{}
	}

	minDate, maxDate := tasks[0].Start, tasks[0].End
	for _, t := range tasks {
		for _, d := range [2]time.Time{t.Start, t.End} {
			if d.Before(minDate) {
				minDate = d
			}
			if d.After(maxDate) {
				maxDate = d
			}
		}
	}

	return TimeRange{
		Start:     minDate,
		End:       maxDate,
		TotalDays: daysBetween(minDate, maxDate),
	}
}

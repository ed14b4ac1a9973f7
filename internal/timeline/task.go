// Package timeline implements the layout engine behind timelanes: it
// partitions tasks into non-overlapping lanes, derives the calendar span
// covered by a task collection and maps dates onto a zoomable pixel axis.
//
// Every function in this package is pure. Callers hand in a task slice
// and get a freshly computed result back; an edit produces a new slice
// (see Rename) which is laid out again from scratch.
package timeline

import (
	"fmt"
	"strings"
	"time"
)

// Day is the unit used for all calendar arithmetic. Days are treated as
// plain 24h spans, no timezone or DST adjustment is applied.
const Day = 24 * time.Hour

// dateFormats lists the accepted textual date layouts, tried in order.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// Task is a named, closed date interval displayed as one bar.
// Start and End are canonical dates (UTC midnight) with Start <= End.
type Task struct {
	ID     string
	Name   string
	Start  time.Time
	End    time.Time
	Labels map[string]string
}

// String returns the tooltip form used by the rendering surfaces.
func (t Task) String() string {
	return fmt.Sprintf("%s (%s to %s)", t.Name, FormatDate(t.Start), FormatDate(t.End))
}

// Days returns the inclusive number of calendar days covered by the task.
func (t Task) Days() int {
	return daysBetween(t.Start, t.End) + 1
}

// Record is the raw, unvalidated shape tasks arrive in from a source.
type Record struct {
	ID     string
	Name   string
	Start  string
	End    string
	Labels map[string]string
}

// ValidationError reports a task rejected at ingestion.
type ValidationError struct {
	TaskID string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid task %q: %s", e.TaskID, e.Reason)
	}
	return fmt.Sprintf("invalid task %q: %s: %s", e.TaskID, e.Field, e.Reason)
}

// ParseDate converts a textual date into its canonical form. Any
// time-of-day component is discarded.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	var (
		t   time.Time
		err error
	)
	for _, format := range dateFormats {
		t, err = time.Parse(format, s)
		if err == nil {
			return NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, err)
}

// NormalizeDate truncates t to midnight UTC of its own calendar date.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a canonical date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// NewTask builds a validated task from date values.
func NewTask(id, name string, start, end time.Time) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, &ValidationError{TaskID: id, Field: "id", Reason: "must not be empty"}
	}
	start, end = NormalizeDate(start), NormalizeDate(end)
	if start.After(end) {
		return Task{}, &ValidationError{
			TaskID: id,
			Reason: fmt.Sprintf("start %s is after end %s", FormatDate(start), FormatDate(end)),
		}
	}
	return Task{ID: id, Name: name, Start: start, End: end}, nil
}

// Ingest validates raw records and converts them to tasks. It stops at
// the first malformed record so that no partially valid collection is
// ever laid out.
func Ingest(records []Record) ([]Task, error) {
	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		start, err := ParseDate(r.Start)
		if err != nil {
			return nil, &ValidationError{TaskID: r.ID, Field: "start", Reason: err.Error()}
		}
		end, err := ParseDate(r.End)
		if err != nil {
			return nil, &ValidationError{TaskID: r.ID, Field: "end", Reason: err.Error()}
		}
		task, err := NewTask(r.ID, r.Name, start, end)
		if err != nil {
			return nil, err
		}
		task.Labels = r.Labels
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Overlaps reports whether two tasks share at least one day. Both ends
// are inclusive: a task ending on the day another starts overlaps it.
func Overlaps(a, b Task) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// secondsPerDay matches Day in whole seconds.
const secondsPerDay = int64(Day / time.Second)

// daysBetween returns ceil((to - from) / Day), negative when to < from.
// It counts in Unix seconds because a time.Duration cannot hold spans
// longer than about 292 years.
func daysBetween(from, to time.Time) int {
	secs := to.Unix() - from.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay > 0 {
		days++
	}
	return int(days)
}

// Package source reads task collections from files and calendars and
// hands them to the timeline engine through its validating ingestion step.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/labels"

	"timelanes/internal/config"
	"timelanes/internal/debug"
	"timelanes/internal/timeline"
)

// CalendarPrefix marks an input that names a Google Calendar instead of a file.
const CalendarPrefix = "calendar:"

// Load reads tasks from input. The format is chosen from the file
// extension (.csv, .yaml/.yml, .json); an input of the form
// "calendar:<name>" reads events from a Google Calendar.
func Load(ctx context.Context, input string, cfg config.Config) ([]timeline.Task, error) {
	var (
		records []timeline.Record
		err     error
	)

	switch {
	case strings.HasPrefix(input, CalendarPrefix):
		name := strings.TrimPrefix(input, CalendarPrefix)
		if name == "" {
			name = cfg.Calendar.Name
		}
		records, err = loadCalendar(ctx, name, cfg)
	default:
		switch strings.ToLower(filepath.Ext(input)) {
		case ".csv":
			records, err = ReadCSV(input, cfg)
		case ".yaml", ".yml":
			records, err = ReadYAML(input)
		case ".json":
			records, err = ReadJSON(input, cfg)
		default:
			return nil, fmt.Errorf("unsupported input %q: expected .csv, .yaml, .json or %s<name>", input, CalendarPrefix)
		}
	}
	if err != nil {
		return nil, err
	}

	debug.Printf("read %d records from %s", len(records), input)
	return Ingest(records)
}

// Ingest fills in missing ids and validates the records. The caller's
// records are not modified.
func Ingest(in []timeline.Record) ([]timeline.Task, error) {
	records := slices.Clone(in)
	for i := range records {
		if strings.TrimSpace(records[i].ID) == "" {
			records[i].ID = NewID()
			debug.Printf("record %d has no id, assigned %s", i, records[i].ID)
		}
		if records[i].Name == "" {
			records[i].Name = records[i].ID
		}
	}
	return timeline.Ingest(records)
}

// NewID returns a short random task id.
func NewID() string {
	return "T-" + uuid.New().String()[:8]
}

// Select keeps the tasks whose labels match a label selector such as
// "team=core,phase!=done". An empty selector keeps everything.
// The returned slice is always a new collection.
func Select(tasks []timeline.Task, selector string) ([]timeline.Task, error) {
	out := make([]timeline.Task, 0, len(tasks))
	if strings.TrimSpace(selector) == "" {
		return append(out, tasks...), nil
	}

	sel, err := labels.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("error parsing selector %q: %w", selector, err)
	}
	for _, t := range tasks {
		if sel.Matches(labels.Set(t.Labels)) {
			out = append(out, t)
		}
	}
	debug.Printf("selector %q kept %d of %d tasks", selector, len(out), len(tasks))
	return out, nil
}

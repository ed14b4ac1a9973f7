package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"timelanes/internal/config"
	"timelanes/internal/debug"
	"timelanes/internal/timeline"
)

// errCalendarFound stops paging through the calendar list.
var errCalendarFound = errors.New("calendar found")

// CalendarClient reads events from one Google Calendar.
type CalendarClient struct {
	srv  *calendar.Service
	name string
	now  func() time.Time
}

// NewCalendarClient wraps an existing Calendar service.
func NewCalendarClient(srv *calendar.Service, name string) *CalendarClient {
	return &CalendarClient{srv: srv, name: name, now: time.Now}
}

// NewCalendarService builds a read-only Calendar service from the OAuth
// client secrets and a previously saved token.
func NewCalendarService(ctx context.Context, cfg config.Config) (*calendar.Service, error) {
	client, err := oauthClient(ctx, cfg.Calendar.Credentials, cfg.Calendar.Token)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar client: %w", err)
	}
	return srv, nil
}

func oauthClient(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", credentialsFile, err)
	}
	conf, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}

	f, err := os.Open(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read token file %s: %w", tokenFile, err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("unable to decode token file %s: %w", tokenFile, err)
	}
	return conf.Client(ctx, tok), nil
}

func loadCalendar(ctx context.Context, name string, cfg config.Config) ([]timeline.Record, error) {
	srv, err := NewCalendarService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, name).Records(ctx, cfg.Calendar.Past, cfg.Calendar.Future)
}

// Records lists the events between now-past and now+future as task records.
func (c *CalendarClient) Records(ctx context.Context, past, future time.Duration) ([]timeline.Record, error) {
	calendarID, err := c.calendarID(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	var records []timeline.Record
	err = c.srv.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(now.Add(-past).Format(time.RFC3339)).
		TimeMax(now.Add(future).Format(time.RFC3339)).
		Pages(ctx, func(page *calendar.Events) error {
			for _, ev := range page.Items {
				rec, ok := eventRecord(ev)
				if !ok {
					debug.Printf("skipping calendar event %q without usable dates", ev.Id)
					continue
				}
				rec.Labels["calendar"] = c.name
				records = append(records, rec)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}
	return records, nil
}

// calendarID resolves the calendar summary to its id. "primary" is
// passed through.
func (c *CalendarClient) calendarID(ctx context.Context) (string, error) {
	if c.name == "" || c.name == "primary" {
		return "primary", nil
	}

	var id string
	err := c.srv.CalendarList.List().Pages(ctx, func(page *calendar.CalendarList) error {
		for _, item := range page.Items {
			if item.Summary == c.name || item.Id == c.name {
				id = item.Id
				return errCalendarFound
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errCalendarFound) {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("calendar '%s' not found", c.name)
	}
	return id, nil
}

// eventRecord converts a calendar event into a task record. All-day
// events carry an exclusive end date, so the last day is the one before
// it. Timed events ending exactly at midnight do not occupy that day.
func eventRecord(ev *calendar.Event) (timeline.Record, bool) {
	if ev == nil || ev.Start == nil || ev.End == nil || ev.Status == "cancelled" {
		return timeline.Record{}, false
	}

	var start, end time.Time
	switch {
	case ev.Start.Date != "" && ev.End.Date != "":
		s, err1 := timeline.ParseDate(ev.Start.Date)
		e, err2 := timeline.ParseDate(ev.End.Date)
		if err1 != nil || err2 != nil {
			return timeline.Record{}, false
		}
		start, end = s, e.Add(-timeline.Day)
		if end.Before(start) {
			end = start
		}
	case ev.Start.DateTime != "" && ev.End.DateTime != "":
		s, err1 := time.Parse(time.RFC3339, ev.Start.DateTime)
		e, err2 := time.Parse(time.RFC3339, ev.End.DateTime)
		if err1 != nil || err2 != nil {
			return timeline.Record{}, false
		}
		if e.After(s) && e.Equal(startOfDay(e)) {
			e = e.Add(-time.Nanosecond)
		}
		start, end = timeline.NormalizeDate(s), timeline.NormalizeDate(e)
	default:
		return timeline.Record{}, false
	}

	name := ev.Summary
	if name == "" {
		name = "(no title)"
	}
	labels := map[string]string{"source": "calendar"}
	if ev.Status != "" {
		labels["status"] = ev.Status
	}
	return timeline.Record{
		ID:     ev.Id,
		Name:   name,
		Start:  timeline.FormatDate(start),
		End:    timeline.FormatDate(end),
		Labels: labels,
	}, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Package config holds the YAML configuration for timelanes.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"timelanes/internal/timeline"
)

// Config represents the complete configuration for rendering a lane timeline.
// It maps directly to a YAML file and controls:
//   - Font and color settings of the SVG surface
//   - Canvas dimensions, margins and lane geometry
//   - Axis labelling and zoom bounds
//   - How tasks are read from CSV, JSON and Google Calendar sources
//
// Any key missing from the file keeps its default value.
type Config struct {
	Font struct {
		Family string `yaml:"family"` // Font family for all text elements
		Size   int    `yaml:"size"`   // Base font size in pixels
	} `yaml:"font"`
	Colors struct {
		Background string   `yaml:"background"` // SVG background color
		Text       string   `yaml:"text"`       // Axis and label text color
		Grid       string   `yaml:"grid"`       // Lane separators and axis ticks
		Bar        string   `yaml:"bar"`        // Default bar fill
		BarText    string   `yaml:"bar_text"`   // Text drawn inside bars
		Palette    []string `yaml:"palette"`    // Optional per-lane fills, cycled
	} `yaml:"colors"`
	Layout struct {
		ViewportWidth int `yaml:"viewport_width"` // Viewport the timeline width is derived from (0 = default 800px timeline)
		MarginTop     int `yaml:"margin_top"`     // Space above the axis
		MarginBottom  int `yaml:"margin_bottom"`  // Space below the last lane
		MarginLeft    int `yaml:"margin_left"`    // Space left of the timeline
		MarginRight   int `yaml:"margin_right"`   // Space right of the timeline
		LaneHeight    int `yaml:"lane_height"`    // Height of a lane row
		BarHeight     int `yaml:"bar_height"`     // Height of a bar inside its lane
		BarRadius     int `yaml:"bar_radius"`     // Corner radius of bars
		BarPadding    int `yaml:"bar_padding"`    // Horizontal text padding inside bars
	} `yaml:"layout"`
	Axis struct {
		Show        bool    `yaml:"show"`          // Draw day markers above the lanes
		LabelFormat string  `yaml:"label_format"`  // Go time layout for marker labels
		MinLabelGap float64 `yaml:"min_label_gap"` // Minimum pixels between two labels
		Height      int     `yaml:"height"`        // Height reserved for the axis
	} `yaml:"axis"`
	Zoom struct {
		Initial float64 `yaml:"initial"` // Zoom applied when rendering
		Min     float64 `yaml:"min"`     // Lower zoom bound
		Max     float64 `yaml:"max"`     // Upper zoom bound
		Step    float64 `yaml:"step"`    // Multiplicative step per zoom action
	} `yaml:"zoom"`
	Columns struct {
		ID     string   `yaml:"id"`     // CSV column holding the task id
		Name   string   `yaml:"name"`   // CSV column holding the display name
		Start  string   `yaml:"start"`  // CSV column holding the start date
		End    string   `yaml:"end"`    // CSV column holding the end date
		Labels []string `yaml:"labels"` // CSV columns copied into task labels (empty = all others)
	} `yaml:"columns"`
	JSON struct {
		Tasks  string `yaml:"tasks"`  // gjson path of the task array ("" = top-level array or "tasks")
		ID     string `yaml:"id"`     // gjson path of the id inside a task
		Name   string `yaml:"name"`   // gjson path of the name
		Start  string `yaml:"start"`  // gjson path of the start date
		End    string `yaml:"end"`    // gjson path of the end date
		Labels string `yaml:"labels"` // gjson path of a label object
	} `yaml:"json"`
	Calendar struct {
		Credentials string        `yaml:"credentials"` // OAuth client secrets file
		Token       string        `yaml:"token"`       // Saved OAuth token file
		Name        string        `yaml:"name"`        // Calendar summary to read from
		Past        time.Duration `yaml:"past"`        // Window before now
		Future      time.Duration `yaml:"future"`      // Window after now
	} `yaml:"calendar"`
}

// Default returns the default configuration. The bar and zoom values
// reproduce the stock timeline: 40px lanes with 30px bars, zoom between
// 0.25x and 2.5x in steps of 1.2.
func Default() Config {
	var c Config

	c.Font.Family = "Arial, sans-serif"
	c.Font.Size = 12

	c.Colors.Background = "#ffffff"
	c.Colors.Text = "#333333"
	c.Colors.Grid = "#e5e5e5"
	c.Colors.Bar = "#3b82f6"
	c.Colors.BarText = "#ffffff"

	c.Layout.ViewportWidth = 0
	c.Layout.MarginTop = 20
	c.Layout.MarginBottom = 20
	c.Layout.MarginLeft = 20
	c.Layout.MarginRight = 20
	c.Layout.LaneHeight = 40
	c.Layout.BarHeight = 30
	c.Layout.BarRadius = 2
	c.Layout.BarPadding = 4

	c.Axis.Show = true
	c.Axis.LabelFormat = "Jan 2"
	c.Axis.MinLabelGap = 40
	c.Axis.Height = 30

	c.Zoom.Initial = timeline.DefaultZoom
	c.Zoom.Min = timeline.DefaultMinZoom
	c.Zoom.Max = timeline.DefaultMaxZoom
	c.Zoom.Step = timeline.DefaultZoomStep

	c.Columns.ID = "id"
	c.Columns.Name = "name"
	c.Columns.Start = "start"
	c.Columns.End = "end"

	c.JSON.ID = "id"
	c.JSON.Name = "name"
	c.JSON.Start = "start"
	c.JSON.End = "end"
	c.JSON.Labels = "labels"

	c.Calendar.Credentials = "credentials.json"
	c.Calendar.Token = "token.json"
	c.Calendar.Name = "primary"
	c.Calendar.Past = 30 * 24 * time.Hour
	c.Calendar.Future = 90 * 24 * time.Hour

	return c
}

// Load reads configuration from a YAML file on top of the defaults.
// An empty path returns the defaults.
func Load(configPath string) (Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks values that would make the layout meaningless.
func (c Config) Validate() error {
	var problems []string
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		problems = append(problems, fmt.Sprintf("zoom bounds [%g, %g] are invalid", c.Zoom.Min, c.Zoom.Max))
	}
	if c.Zoom.Step <= 1 {
		problems = append(problems, fmt.Sprintf("zoom step %g must be greater than 1", c.Zoom.Step))
	}
	if c.Layout.LaneHeight <= 0 {
		problems = append(problems, "layout.lane_height must be positive")
	}
	if c.Layout.BarHeight <= 0 || c.Layout.BarHeight > c.Layout.LaneHeight {
		problems = append(problems, "layout.bar_height must be positive and fit in a lane")
	}
	if c.Layout.ViewportWidth < 0 {
		problems = append(problems, "layout.viewport_width must not be negative")
	}
	if c.Font.Size <= 0 {
		problems = append(problems, "font.size must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// ZoomPolicy converts the zoom section into the engine's policy.
func (c Config) ZoomPolicy() timeline.ZoomPolicy {
	return timeline.ZoomPolicy{Min: c.Zoom.Min, Max: c.Zoom.Max, Step: c.Zoom.Step}
}

// ViewState returns the initial view described by the configuration.
func (c Config) ViewState() timeline.ViewState {
	v := timeline.NewViewState(float64(c.Layout.ViewportWidth))
	v.Policy = c.ZoomPolicy()
	return v.WithZoom(c.Zoom.Initial)
}

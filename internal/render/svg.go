// Package render draws laid-out timelines as SVG documents and as
// colored terminal listings.
package render

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"timelanes/internal/config"
	"timelanes/internal/debug"
	"timelanes/internal/timeline"
)

// SVG renders a layout result as a standalone SVG document: an optional
// day axis on top, one row per lane and one rounded bar per task. Each
// bar carries a <title> tooltip of the form "name (start to end)".
func SVG(res timeline.Result, cfg config.Config) string {
	contentWidth := res.ContentWidth()
	for _, lane := range res.Lanes {
		for _, bar := range lane.Bars {
			contentWidth = math.Max(contentWidth, bar.Right())
		}
	}

	axisHeight := 0
	if cfg.Axis.Show {
		axisHeight = cfg.Axis.Height
	}
	laneCount := len(res.Lanes)
	lanesHeight := laneCount * cfg.Layout.LaneHeight
	if laneCount == 0 {
		lanesHeight = cfg.Layout.LaneHeight
	}

	width := cfg.Layout.MarginLeft + int(math.Ceil(contentWidth)) + cfg.Layout.MarginRight
	height := cfg.Layout.MarginTop + axisHeight + lanesHeight + cfg.Layout.MarginBottom
	originX := float64(cfg.Layout.MarginLeft)
	lanesY := cfg.Layout.MarginTop + axisHeight

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.axis-text { font-family: %s; font-size: %dpx; fill: %s; }
.bar-text { font-family: %s; font-size: %dpx; fill: %s; }
</style>
</defs>
`, width, height, cfg.Colors.Background,
		cfg.Font.Family, cfg.Font.Size-2, cfg.Colors.Text,
		cfg.Font.Family, cfg.Font.Size, cfg.Colors.BarText))

	if laneCount == 0 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-text">No tasks</text>`,
			cfg.Layout.MarginLeft, lanesY+cfg.Layout.LaneHeight/2))
		svg.WriteString("\n</svg>\n")
		return svg.String()
	}

	if cfg.Axis.Show {
		drawAxis(&svg, res, cfg, originX, lanesY)
	}

	// Lane frame with separators between rows
	svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%d" width="%s" height="%d" fill="none" stroke="%s" rx="2"/>`,
		px(originX), lanesY, px(contentWidth), lanesHeight, cfg.Colors.Grid))
	svg.WriteString("\n")
	for i := 1; i < laneCount; i++ {
		y := lanesY + i*cfg.Layout.LaneHeight
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%d" x2="%s" y2="%d" stroke="%s" stroke-width="1"/>`,
			px(originX), y, px(originX+contentWidth), y, cfg.Colors.Grid))
		svg.WriteString("\n")
	}

	barOffset := (cfg.Layout.LaneHeight - cfg.Layout.BarHeight) / 2
	for _, lane := range res.Lanes {
		fill := laneColor(lane.Index, cfg)
		y := lanesY + lane.Index*cfg.Layout.LaneHeight + barOffset
		for _, bar := range lane.Bars {
			drawBar(&svg, bar, originX, y, fill, cfg)
		}
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

// drawAxis draws one tick per day and the de-duplicated date labels.
func drawAxis(svg *strings.Builder, res timeline.Result, cfg config.Config, originX float64, lanesY int) {
	ticks := timeline.AxisTicks(res.Range, res.TimelineWidth, res.Zoom, cfg.Axis.LabelFormat, cfg.Axis.MinLabelGap)
	debug.Printf("axis: %d ticks", len(ticks))

	for _, tick := range ticks {
		x := originX + tick.X
		tickTop := lanesY - 4
		if tick.Label != "" {
			tickTop = lanesY - 8
			svg.WriteString(fmt.Sprintf(`<text x="%s" y="%d" text-anchor="middle" class="axis-text">%s</text>`,
				px(x), lanesY-12, escapeXML(tick.Label)))
		}
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%d" x2="%s" y2="%d" stroke="%s" stroke-width="1"/>`,
			px(x), tickTop, px(x), lanesY, cfg.Colors.Grid))
		svg.WriteString("\n")
	}
}

// drawBar draws a single task bar with its tooltip and clipped label.
func drawBar(svg *strings.Builder, bar timeline.Bar, originX float64, y int, fill string, cfg config.Config) {
	x := originX + bar.Left
	task := bar.Task

	svg.WriteString(fmt.Sprintf(`<g id="task-%s">`, escapeXML(task.ID)))
	svg.WriteString(fmt.Sprintf(`<title>%s</title>`, escapeXML(task.String())))
	svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%d" width="%s" height="%d" rx="%d" fill="%s"/>`,
		px(x), y, px(bar.Width), cfg.Layout.BarHeight, cfg.Layout.BarRadius, fill))

	available := int(bar.Width) - 2*cfg.Layout.BarPadding
	if label := truncateText(task.Name, available, cfg.Font.Size); label != "" {
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%d" dominant-baseline="middle" class="bar-text">%s</text>`,
			px(x+float64(cfg.Layout.BarPadding)), y+cfg.Layout.BarHeight/2, escapeXML(label)))
	}
	svg.WriteString("</g>\n")
}

func laneColor(index int, cfg config.Config) string {
	if len(cfg.Colors.Palette) == 0 {
		return cfg.Colors.Bar
	}
	return cfg.Colors.Palette[index%len(cfg.Colors.Palette)]
}

// estimateTextWidth estimates the width of text in pixels based on character count
func estimateTextWidth(text string, fontSize int) int {
	// Rough estimation: average character width is about 0.6 * font size
	avgCharWidth := float64(fontSize) * 0.6
	return int(float64(len([]rune(text))) * avgCharWidth)
}

// truncateText shortens text with an ellipsis so that it fits into
// maxWidth pixels. It returns "" when not even one character fits.
func truncateText(text string, maxWidth, fontSize int) string {
	if estimateTextWidth(text, fontSize) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if estimateTextWidth(candidate, fontSize) <= maxWidth {
			return candidate
		}
	}
	return ""
}

// escapeXML escapes special XML characters in a string to ensure valid SVG output.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// px formats a pixel value with at most one decimal.
func px(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

// OutputFilename determines the output filename for the SVG file.
// If outputFile is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the input file by replacing
// the extension with .svg (e.g., "plan.csv" becomes "plan.svg").
func OutputFilename(inputFile, outputFile string) string {
	if outputFile != "" {
		return outputFile
	}

	base := filepath.Base(inputFile)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "timeline"
	}
	return name + ".svg"
}

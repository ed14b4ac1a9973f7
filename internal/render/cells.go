package render

import (
	"math"
	"strings"

	"timelanes/internal/timeline"
)

// PixelsPerCell is the horizontal resolution of character-cell output:
// one terminal column covers eight layout pixels.
const PixelsPerCell = 8.0

// Span is a bar rasterized onto a row of character cells. Start and End
// are column indexes relative to the visible window, End exclusive.
type Span struct {
	Bar   timeline.Bar
	Start int
	End   int
}

// Cells returns the number of columns needed to show pixels.
func Cells(pixels float64) int {
	return int(math.Ceil(pixels / PixelsPerCell))
}

// Spans rasterizes the bars of one lane into the window of cols columns
// starting at column offset. Bars outside the window are dropped, bars
// crossing its edges are clipped. Every visible bar covers at least one
// cell and spans never overlap.
func Spans(bars []timeline.Bar, offset, cols int) []Span {
	var spans []Span
	prevEnd := 0
	for _, bar := range bars {
		start := int(math.Floor(bar.Left/PixelsPerCell)) - offset
		end := int(math.Ceil(bar.Right()/PixelsPerCell)) - offset
		if end <= start {
			end = start + 1
		}
		if start < prevEnd {
			start = prevEnd
		}
		if start < 0 {
			start = 0
		}
		if end > cols {
			end = cols
		}
		if start >= end {
			continue
		}
		spans = append(spans, Span{Bar: bar, Start: start, End: end})
		prevEnd = end
	}
	return spans
}

// PaintRow lays spans out on a row of cols cells. paint receives each
// span with its label already fitted to the span width and returns the
// styled text; empty cells are blanks.
func PaintRow(spans []Span, cols int, paint func(Span, string) string) string {
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			b.WriteString(strings.Repeat(" ", s.Start-pos))
		}
		b.WriteString(paint(s, fitLabel(s.Bar.Task.Name, s.End-s.Start)))
		pos = s.End
	}
	if pos < cols {
		b.WriteString(strings.Repeat(" ", cols-pos))
	}
	return b.String()
}

// fitLabel pads or truncates name to exactly n cells.
func fitLabel(name string, n int) string {
	runes := []rune(name)
	if len(runes) > n {
		if n > 1 {
			runes = append(runes[:n-1:n-1], '…')
		} else {
			runes = runes[:n]
		}
	}
	return string(runes) + strings.Repeat(" ", n-len(runes))
}

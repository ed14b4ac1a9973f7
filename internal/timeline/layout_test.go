package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewStateTimelineWidth(t *testing.T) {
	cases := map[string]struct {
		viewport float64
		expected float64
	}{
		"Unknown": {viewport: 0, expected: DefaultTimelineWidth},
		"Narrow":  {viewport: 500, expected: 400},
		"Wide":    {viewport: 2000, expected: MaxTimelineWidth},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, NewViewState(tc.viewport).TimelineWidth(), 1e-9)
		})
	}
}

func TestViewStateZoom(t *testing.T) {
	v := NewViewState(1000)
	assert.Equal(t, 1.0, v.Zoom)

	in := v.ZoomIn()
	assert.InDelta(t, 1.2, in.Zoom, 1e-9)
	assert.Equal(t, 1.0, v.Zoom, "ZoomIn must not modify the receiver")

	out := v.ZoomOut()
	assert.InDelta(t, 1/1.2, out.Zoom, 1e-9)

	for i := 0; i < 20; i++ {
		in = in.ZoomIn()
		out = out.ZoomOut()
	}
	assert.Equal(t, DefaultMaxZoom, in.Zoom)
	assert.Equal(t, DefaultMinZoom, out.Zoom)

	assert.Equal(t, DefaultMaxZoom, v.WithZoom(10).Zoom)
	assert.Equal(t, DefaultMinZoom, v.WithZoom(0.01).Zoom)
}

func TestViewStateCustomPolicy(t *testing.T) {
	v := NewViewState(800)
	v.Policy = ZoomPolicy{Min: 0.5, Max: 4, Step: 2}

	assert.Equal(t, 2.0, v.ZoomIn().Zoom)
	assert.Equal(t, 4.0, v.ZoomIn().ZoomIn().ZoomIn().Zoom)
	assert.Equal(t, 0.5, v.ZoomOut().ZoomOut().Zoom)

	// A nonsensical policy falls back to the defaults.
	v.Policy = ZoomPolicy{Min: 2, Max: 1, Step: 0.5}
	assert.InDelta(t, 1.2, v.ZoomIn().Zoom, 1e-9)
}

func TestViewStateZeroValue(t *testing.T) {
	var v ViewState
	assert.Equal(t, DefaultZoom, v.EffectiveZoom())
	assert.InDelta(t, 1.2, v.ZoomIn().Zoom, 1e-9)
	assert.Equal(t, "x", v.WithEditing("x").Editing)
	assert.Equal(t, 640.0, v.WithViewport(800).TimelineWidth())
}

func TestLayout(t *testing.T) {
	tasks := []Task{
		task("a", "2024-01-01", "2024-01-03"),
		task("b", "2024-01-02", "2024-01-04"),
		task("c", "2024-01-06", "2024-01-11"),
	}
	view := NewViewState(1250) // timeline width 1000

	res := Layout(tasks, view)
	assert.Equal(t, 10, res.Range.TotalDays)
	assert.Equal(t, 1000.0, res.TimelineWidth)
	assert.Equal(t, 1.0, res.Zoom)
	assert.Equal(t, 3, res.TaskCount())
	require.Len(t, res.Lanes, 2)

	// c reuses lane 1, which frees later than lane 0.
	lane0 := res.Lanes[0]
	assert.Equal(t, 0, lane0.Index)
	require.Len(t, lane0.Bars, 1)
	assert.Same(t, &tasks[0], lane0.Bars[0].Task)
	assert.InDelta(t, 0, lane0.Bars[0].Left, 1e-9)
	assert.InDelta(t, 296, lane0.Bars[0].Width, 1e-9)

	lane1 := res.Lanes[1]
	assert.Equal(t, 1, lane1.Index)
	require.Len(t, lane1.Bars, 2)
	assert.Same(t, &tasks[1], lane1.Bars[0].Task)
	assert.InDelta(t, 100, lane1.Bars[0].Left, 1e-9)
	assert.Same(t, &tasks[2], lane1.Bars[1].Task)
	assert.InDelta(t, 500, lane1.Bars[1].Left, 1e-9)
	assert.InDelta(t, 596, lane1.Bars[1].Width, 1e-9)
	assert.InDelta(t, 1096, lane1.Bars[1].Right(), 1e-9)
}

func TestLayoutAppliesZoom(t *testing.T) {
	tasks := []Task{
		task("a", "2024-01-01", "2024-01-03"),
		task("b", "2024-01-06", "2024-01-11"),
	}
	base := Layout(tasks, NewViewState(1250))
	zoomed := Layout(tasks, NewViewState(1250).WithZoom(2))

	assert.InDelta(t, 2000, zoomed.ContentWidth(), 1e-9)
	for i, lane := range base.Lanes {
		for j, bar := range lane.Bars {
			assert.InDelta(t, bar.Left*2, zoomed.Lanes[i].Bars[j].Left, 1e-9)
			assert.InDelta(t, bar.Width*2, zoomed.Lanes[i].Bars[j].Width, 1e-9)
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	res := Layout(nil, NewViewState(0))
	assert.Empty(t, res.Lanes)
	assert.True(t, res.Range.IsZero())
	assert.Equal(t, 0, res.TaskCount())
}

func TestLayoutSingleDay(t *testing.T) {
	tasks := []Task{task("a", "2024-06-01", "2024-06-01")}
	res := Layout(tasks, NewViewState(0))

	require.Len(t, res.Lanes, 1)
	bar := res.Lanes[0].Bars[0]
	assert.Equal(t, 0.0, bar.Left)
	assert.Equal(t, MinBarWidth, bar.Width)
}

func TestRename(t *testing.T) {
	tasks := []Task{
		task("a", "2024-01-01", "2024-01-03"),
		task("b", "2024-01-02", "2024-01-04"),
	}

	renamed, ok := Rename(tasks, "b", "Ship it")
	require.True(t, ok)
	assert.Equal(t, "Ship it", renamed[1].Name)
	assert.Equal(t, "Task b", tasks[1].Name, "input collection must not change")
	assert.NotSame(t, &tasks[0], &renamed[0])

	_, ok = Rename(tasks, "missing", "x")
	assert.False(t, ok)
}

func TestRenameClonesLabels(t *testing.T) {
	a := task("a", "2024-01-01", "2024-01-03")
	a.Labels = map[string]string{"team": "core"}
	tasks := []Task{a, task("b", "2024-01-02", "2024-01-04")}

	renamed, ok := Rename(tasks, "a", "Design")
	require.True(t, ok)
	renamed[0].Labels["team"] = "infra"

	assert.Equal(t, "core", tasks[0].Labels["team"])
	assert.Nil(t, renamed[1].Labels)
}

func TestFind(t *testing.T) {
	tasks := []Task{task("a", "2024-01-01", "2024-01-03"), task("b", "2024-01-02", "2024-01-04")}
	assert.Equal(t, 1, Find(tasks, "b"))
	assert.Equal(t, -1, Find(tasks, "z"))
}

func TestAxisTicks(t *testing.T) {
	tr := TimeRange{Start: date("2024-01-01"), End: date("2024-01-05"), TotalDays: 4}

	t.Run("AllLabels", func(t *testing.T) {
		ticks := AxisTicks(tr, 400, 1, "Jan 2", 0)
		require.Len(t, ticks, 5)
		assert.Equal(t, "Jan 1", ticks[0].Label)
		assert.Equal(t, "Jan 5", ticks[4].Label)
		assert.InDelta(t, 300, ticks[3].X, 1e-9)
	})

	t.Run("DuplicateLabelsDropped", func(t *testing.T) {
		ticks := AxisTicks(tr, 400, 1, "Jan 2006", 0)
		require.Len(t, ticks, 5)
		assert.Equal(t, "Jan 2024", ticks[0].Label)
		for _, tick := range ticks[1:] {
			assert.Empty(t, tick.Label)
		}
	})

	t.Run("MinGap", func(t *testing.T) {
		ticks := AxisTicks(tr, 400, 1, "Jan 2", 150)
		labelled := []string{}
		for _, tick := range ticks {
			if tick.Label != "" {
				labelled = append(labelled, tick.Label)
			}
		}
		assert.Equal(t, []string{"Jan 1", "Jan 3", "Jan 5"}, labelled)
	})

	t.Run("Zoom", func(t *testing.T) {
		ticks := AxisTicks(tr, 400, 2, "", 0)
		assert.InDelta(t, 800, ticks[4].X, 1e-9)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, AxisTicks(TimeRange{}, 400, 1, "", 0))
	})

	t.Run("LongRange", func(t *testing.T) {
		long := CalculateTimeRange([]Task{
			task("a", "2000-01-01", "2000-01-01"),
			task("b", "2400-01-01", "2400-01-01"),
		})
		ticks := AxisTicks(long, 1000, 1, "2006-01-02", 100)
		require.Len(t, ticks, 146098)
		assert.True(t, ticks[0].Date.Equal(date("2000-01-01")))
		assert.True(t, ticks[len(ticks)-1].Date.Equal(date("2400-01-01")))
		assert.InDelta(t, 1000, ticks[len(ticks)-1].X, 1e-9)
		for i := 1; i < len(ticks); i++ {
			if !ticks[i].Date.After(ticks[i-1].Date) || ticks[i].X < ticks[i-1].X {
				t.Fatalf("tick %d out of order: %s at %.4f after %s at %.4f",
					i, ticks[i].Date, ticks[i].X, ticks[i-1].Date, ticks[i-1].X)
			}
		}
	})

	t.Run("SingleDay", func(t *testing.T) {
		single := TimeRange{Start: date("2024-06-01"), End: date("2024-06-01")}
		ticks := AxisTicks(single, 400, 1, "", 0)
		require.Len(t, ticks, 1)
		assert.Equal(t, 0.0, ticks[0].X)
	})
}

package timeline

import (
	"sort"
	"time"

	"timelanes/internal/debug"
)

// Lane is one visual row. No two tasks in a lane overlap.
// Entries point into the slice handed to AssignLanes.
type Lane []*Task

// AssignLanes partitions tasks into the minimum number of lanes such that
// no lane holds two overlapping tasks.
//
// Tasks are visited by ascending start date, equal starts keeping their
// input order. Each task goes to the open lane whose last end date is the
// latest one still strictly before the task's start (the most recently
// freed lane); among lanes with the same end date the lowest index wins.
// When no lane is free a new one is opened. Lanes are returned in the
// order they were opened.
func AssignLanes(tasks []Task) []Lane {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tasks[order[a]].Start.Before(tasks[order[b]].Start)
	})

	lanes := make([]Lane, 0)
	// free is kept sorted by end date ascending, then lane index ascending.
	var free []laneEnd

	for _, idx := range order {
		task := &tasks[idx]

		// First slot whose end is not before the start; the candidate
		// group sits immediately to its left.
		pos := sort.Search(len(free), func(i int) bool {
			return !free[i].end.Before(task.Start)
		})
		if pos == 0 {
			lanes = append(lanes, Lane{task})
			free = insertLaneEnd(free, laneEnd{lane: len(lanes) - 1, end: task.End})
			debug.Printf("task %s: opened lane %d", task.ID, len(lanes)-1)
			continue
		}

		// Walk back to the lowest lane index sharing the latest end date.
		pick := pos - 1
		for pick > 0 && free[pick-1].end.Equal(free[pos-1].end) {
			pick--
		}
		chosen := free[pick]
		free = append(free[:pick], free[pick+1:]...)

		lanes[chosen.lane] = append(lanes[chosen.lane], task)
		end := chosen.end
		if task.End.After(end) {
			end = task.End
		}
		free = insertLaneEnd(free, laneEnd{lane: chosen.lane, end: end})
		debug.Printf("task %s: reused lane %d (freed %s)", task.ID, chosen.lane, FormatDate(chosen.end))
	}

	return lanes
}

// MaxConcurrency returns the largest number of tasks active on any single
// day, which is the lower bound on the lane count.
func MaxConcurrency(tasks []Task) int {
	type edge struct {
		at    time.Time
		delta int
	}
	edges := make([]edge, 0, 2*len(tasks))
	for _, t := range tasks {
		edges = append(edges, edge{at: t.Start, delta: 1})
		// Ends are inclusive, so the task stops counting the next day.
		edges = append(edges, edge{at: t.End.Add(Day), delta: -1})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].at.Equal(edges[j].at) {
			return edges[i].delta < edges[j].delta
		}
		return edges[i].at.Before(edges[j].at)
	})

	active, peak := 0, 0
	for _, e := range edges {
		active += e.delta
		if active > peak {
			peak = active
		}
	}
	return peak
}

type laneEnd struct {
	lane int
	end  time.Time
}

func (l laneEnd) less(o laneEnd) bool {
	if l.end.Equal(o.end) {
		return l.lane < o.lane
	}
	return l.end.Before(o.end)
}

func insertLaneEnd(free []laneEnd, le laneEnd) []laneEnd {
	i := sort.Search(len(free), func(i int) bool { return le.less(free[i]) })
	free = append(free, laneEnd{})
	copy(free[i+1:], free[i:])
	free[i] = le
	return free
}

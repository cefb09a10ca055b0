package conflict

import (
	"math"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// Detector is a domain service that finds scheduling collisions between
// tasks. All methods are pure.
type Detector struct{}

// NewDetector creates a new Detector instance.
func NewDetector() *Detector {
	return &Detector{}
}

// HasOverlap reports whether two scheduled blocks intersect. Blocks are
// half-open intervals: a task ending at 11:00 does not collide with one
// starting at 11:00.
func (d *Detector) HasOverlap(a, b schedule.Task) bool {
	return a.ScheduledStart.Before(b.ScheduledEnd) && b.ScheduledStart.Before(a.ScheduledEnd)
}

// OverlapMinutes returns the length of the intersection of two scheduled
// blocks, rounded to the nearest minute. Non-overlapping blocks yield 0.
func (d *Detector) OverlapMinutes(a, b schedule.Task) int {
	start := a.ScheduledStart
	if b.ScheduledStart.After(start) {
		start = b.ScheduledStart
	}
	end := a.ScheduledEnd
	if b.ScheduledEnd.Before(end) {
		end = b.ScheduledEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(math.Round(end.Sub(start).Minutes()))
}

// FindConflicts checks every unordered pair once and reports each overlap.
// Results keep the input order: Task1 always appears before Task2 in the
// original slice. Weekly task lists are small, so the quadratic scan is fine.
func (d *Detector) FindConflicts(tasks []schedule.Task) []Conflict {
	conflicts := make([]Conflict, 0)
	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			if d.HasOverlap(tasks[i], tasks[j]) {
				conflicts = append(conflicts, Conflict{
					Task1:          tasks[i],
					Task2:          tasks[j],
					OverlapMinutes: d.OverlapMinutes(tasks[i], tasks[j]),
				})
			}
		}
	}
	return conflicts
}

// CanSchedule reports whether a task fits without colliding with existing
// tasks. Entries sharing the task's ID are ignored so an edit of an
// existing task validates against everything except itself.
func (d *Detector) CanSchedule(task schedule.Task, existing []schedule.Task) bool {
	for _, other := range existing {
		if other.ID == task.ID {
			continue
		}
		if d.HasOverlap(task, other) {
			return false
		}
	}
	return true
}

package rebalance

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// Apply executes a suggestion against a copy of the week's tasks and
// reports how many actions took effect. The caller's week is never
// mutated, and metrics are not recomputed here; re-derive them from the
// returned tasks.
//
// An action whose task id no longer exists is skipped and counted as
// unapplied: suggestions can go stale between generation and application.
// split_task is a declared kind with no application semantics yet and is
// likewise counted unapplied.
func (a *Advisor) Apply(s Suggestion, week *schedule.Week) ([]schedule.Task, ApplyResult) {
	tasks := make([]schedule.Task, len(week.Tasks))
	copy(tasks, week.Tasks)

	applied := 0
	for _, action := range s.Actions {
		idx := -1
		for i := range tasks {
			if tasks[i].ID == action.TaskID {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		switch action.Kind {
		case ActionMoveTask, ActionReschedule:
			if action.Proposed == nil {
				continue
			}
			tasks[idx].ScheduledStart = action.Proposed.Start
			tasks[idx].ScheduledEnd = action.Proposed.End
			applied++
		case ActionReduceHours:
			if action.Proposed == nil {
				continue
			}
			tasks[idx].EstimatedHours = action.Proposed.Hours
			tasks[idx].ScheduledEnd = tasks[idx].ScheduledStart.Add(hoursToDuration(action.Proposed.Hours))
			applied++
		case ActionSplitTask:
			// Splitting has no defined semantics yet.
		}
	}

	total := len(s.Actions)
	return tasks, ApplyResult{
		Applied: applied,
		Total:   total,
		Summary: fmt.Sprintf("Applied %d of %d actions", applied, total),
	}
}

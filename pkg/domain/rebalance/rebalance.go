package rebalance

import (
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank orders priorities for sorting; lower sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

type SuggestionKind string

const (
	KindRedistributeDaily   SuggestionKind = "redistribute_daily"
	KindRedistributeChannel SuggestionKind = "redistribute_channel"
	KindReduceScope         SuggestionKind = "reduce_scope"
	KindExtendTimeline      SuggestionKind = "extend_timeline"
)

// ActionKind is a closed tag set; Apply matches every kind explicitly and
// treats anything else as unapplied.
type ActionKind string

const (
	ActionMoveTask    ActionKind = "move_task"
	ActionSplitTask   ActionKind = "split_task"
	ActionReduceHours ActionKind = "reduce_hours"
	ActionReschedule  ActionKind = "reschedule"
)

// SchedulePatch captures the scheduling-relevant fields of a task at one
// point in time.
type SchedulePatch struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Hours float64   `json:"hours" yaml:"hours"`
}

// Action is one concrete step of a suggestion. Proposed is nil for
// advisory actions that record the current schedule without prescribing a
// replacement.
type Action struct {
	Kind      ActionKind     `json:"kind" yaml:"kind"`
	TaskID    string         `json:"task_id" yaml:"task_id"`
	TaskTitle string         `json:"task_title" yaml:"task_title"`
	Current   SchedulePatch  `json:"current_schedule" yaml:"current_schedule"`
	Proposed  *SchedulePatch `json:"proposed_schedule,omitempty" yaml:"proposed_schedule,omitempty"`
	Reason    string         `json:"reason" yaml:"reason"`
}

// Impact quantifies what adopting a suggestion buys.
type Impact struct {
	HoursReduced           float64 `json:"hours_reduced" yaml:"hours_reduced"`
	UtilizationImprovement float64 `json:"utilization_improvement" yaml:"utilization_improvement"`
	AffectedTasks          int     `json:"affected_tasks" yaml:"affected_tasks"`
}

// Suggestion is a ranked, quantified proposal to relieve overload.
type Suggestion struct {
	ID          string         `json:"id" yaml:"id"`
	Kind        SuggestionKind `json:"kind" yaml:"kind"`
	Priority    Priority       `json:"priority" yaml:"priority"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Impact      Impact         `json:"impact" yaml:"impact"`
	Actions     []Action       `json:"actions" yaml:"actions"`
	Effort      Effort         `json:"estimated_effort" yaml:"estimated_effort"`
}

// Options carries the planner configuration relevant to suggestion
// generation. ReferenceTime anchors the "future task" check for timeline
// extension; the zero value treats every task as future, so callers that
// care pass their notion of now. AllowTaskSplitting is accepted for
// completeness but no generation path produces split_task actions yet.
type Options struct {
	MaxDailyHours                float64
	AllowTaskSplitting           bool
	AllowCrossChannelRebalancing bool
	PreserveDeadlines            bool
	WorkingDays                  []string
	ReferenceTime                time.Time
}

// ApplyResult reports how much of a suggestion could actually be applied.
// Applied < Total signals stale task references or advisory-only actions,
// not an error.
type ApplyResult struct {
	Applied int    `json:"applied" yaml:"applied"`
	Total   int    `json:"total" yaml:"total"`
	Summary string `json:"summary" yaml:"summary"`
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func patchOf(t schedule.Task) SchedulePatch {
	return SchedulePatch{Start: t.ScheduledStart, End: t.ScheduledEnd, Hours: t.EstimatedHours}
}

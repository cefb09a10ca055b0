package rebalance

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/felixgeelhaar/cadence/pkg/domain/workload"
)

const (
	// underutilizedDayFactor marks a working day as a move target when its
	// load is below this fraction of the daily maximum.
	underutilizedDayFactor = 0.8
	// maxMovableTasks caps how many tasks one daily-redistribution pass
	// considers across all overloaded days.
	maxMovableTasks = 3
	// maxMovablePerDay caps how many tasks leave a single overloaded day.
	maxMovablePerDay = 2
	// proposedStartHour is where moved tasks land on their new day.
	proposedStartHour = 9

	// channelOverloadFactor and channelUnderloadFactor classify channels
	// against the mean scheduled hours across all channels.
	channelOverloadFactor  = 1.5
	channelUnderloadFactor = 0.5
	// maxChannelSuggestions caps how many overloaded channels get one.
	maxChannelSuggestions = 2

	// minReducibleHours is the smallest estimate worth trimming.
	minReducibleHours = 4
	// scopeReductionFactor trims a task to this fraction of its estimate.
	scopeReductionFactor = 0.8
	// minReducedHours floors any trimmed estimate.
	minReducedHours = 2
	// maxScopeReductions caps tasks trimmed by one suggestion.
	maxScopeReductions = 3

	// maxTimelineShifts caps tasks deferred by one suggestion.
	maxTimelineShifts = 2
	// timelineShiftDays is how far deferred tasks move.
	timelineShiftDays = 7
)

var defaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Advisor is a domain service that proposes ways to relieve an overloaded
// week. All methods are pure; identical inputs produce identical output,
// including suggestion IDs.
type Advisor struct{}

// NewAdvisor creates a new Advisor instance.
func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Generate produces ranked rebalancing suggestions. A week that is neither
// over weekly capacity nor over capacity on any single working day gets an
// empty list.
func (a *Advisor) Generate(week *schedule.Week, metrics *workload.Metrics, opts Options) []Suggestion {
	if len(opts.WorkingDays) == 0 {
		opts.WorkingDays = defaultWorkingDays
	}

	if !a.needsRebalancing(metrics, opts.WorkingDays) {
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, 4)
	if s := a.redistributeDaily(metrics, opts); s != nil {
		suggestions = append(suggestions, *s)
	}
	if opts.AllowCrossChannelRebalancing {
		suggestions = append(suggestions, a.rebalanceChannels(week, metrics)...)
	}
	if s := a.reduceScope(week, metrics, opts); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := a.extendTimeline(week, metrics, opts); s != nil {
		suggestions = append(suggestions, *s)
	}

	rankSuggestions(suggestions)
	return suggestions
}

// needsRebalancing is the generation gate: the week itself overloaded, or
// any single working day over its capacity.
func (a *Advisor) needsRebalancing(m *workload.Metrics, workingDays []string) bool {
	if m.IsOverloaded {
		return true
	}
	for _, day := range m.Daily {
		if day.IsOverloaded && isWorkingDay(day.DayName, workingDays) {
			return true
		}
	}
	return false
}

// redistributeDaily moves small tasks off overloaded working days onto
// underutilized ones. Target loads are tracked within the pass so two
// moves never double-book the same day.
func (a *Advisor) redistributeDaily(m *workload.Metrics, opts Options) *Suggestion {
	type target struct {
		date time.Time
		name string
		load float64
	}

	var overloaded []workload.DayLoad
	var targets []*target
	for _, day := range m.Daily {
		if !isWorkingDay(day.DayName, opts.WorkingDays) {
			continue
		}
		if day.IsOverloaded {
			overloaded = append(overloaded, day)
		}
		if day.ScheduledHours < underutilizedDayFactor*opts.MaxDailyHours {
			targets = append(targets, &target{date: day.Date, name: day.DayName, load: day.ScheduledHours})
		}
	}
	if len(overloaded) == 0 || len(targets) == 0 {
		return nil
	}

	var movable []schedule.Task
	for _, day := range overloaded {
		picked := 0
		for _, t := range smallestFirst(activeTasks(day.Tasks)) {
			if picked >= maxMovablePerDay || len(movable) >= maxMovableTasks {
				break
			}
			movable = append(movable, t)
			picked++
		}
		if len(movable) >= maxMovableTasks {
			break
		}
	}

	actions := make([]Action, 0, len(movable))
	var movedHours float64
	for _, task := range movable {
		var best *target
		for _, tg := range targets {
			if schedule.SameDate(tg.date, task.ScheduledStart) {
				continue
			}
			if tg.load+task.EstimatedHours > opts.MaxDailyHours {
				continue
			}
			if best == nil || tg.load < best.load {
				best = tg
			}
		}
		if best == nil {
			continue
		}

		start := schedule.AtClock(best.date, proposedStartHour, 0)
		actions = append(actions, Action{
			Kind:      ActionMoveTask,
			TaskID:    task.ID,
			TaskTitle: task.Title,
			Current:   patchOf(task),
			Proposed:  &SchedulePatch{Start: start, End: start.Add(hoursToDuration(task.EstimatedHours)), Hours: task.EstimatedHours},
			Reason:    fmt.Sprintf("%s is overloaded; %s has spare capacity", schedule.DayName(task.ScheduledStart), best.name),
		})
		best.load += task.EstimatedHours
		movedHours += task.EstimatedHours
	}
	if len(actions) == 0 {
		return nil
	}

	priority := PriorityMedium
	if movedHours > opts.MaxDailyHours {
		priority = PriorityHigh
	}
	return &Suggestion{
		ID:          "redistribute-daily",
		Kind:        KindRedistributeDaily,
		Priority:    priority,
		Title:       fmt.Sprintf("Move %d task(s) to lighter days", len(actions)),
		Description: fmt.Sprintf("Moving %s of work off overloaded days evens out the week.", schedule.FormatHours(movedHours)),
		Impact: Impact{
			UtilizationImprovement: relativeImprovement(movedHours, m.CapacityHours),
			AffectedTasks:          len(actions),
		},
		Actions: actions,
		Effort:  EffortLow,
	}
}

// rebalanceChannels flags channels far above the mean and suggests pushing
// their smallest active task toward the first channel far below it. The
// actions are advisory: they record the current schedule and name the
// target channel, but prescribe no new times.
func (a *Advisor) rebalanceChannels(week *schedule.Week, m *workload.Metrics) []Suggestion {
	if len(m.Channels) == 0 {
		return nil
	}
	var sum float64
	for _, ch := range m.Channels {
		sum += ch.ScheduledHours
	}
	mean := sum / float64(len(m.Channels))
	if mean <= 0 {
		return nil
	}

	var receiver *workload.ChannelLoad
	for i := range m.Channels {
		if m.Channels[i].ScheduledHours < channelUnderloadFactor*mean {
			receiver = &m.Channels[i]
			break
		}
	}
	if receiver == nil {
		return nil
	}

	suggestions := make([]Suggestion, 0, maxChannelSuggestions)
	for _, ch := range m.Channels {
		if len(suggestions) >= maxChannelSuggestions {
			break
		}
		if ch.ScheduledHours <= channelOverloadFactor*mean {
			continue
		}

		var candidate *schedule.Task
		for _, t := range smallestFirst(activeTasks(week.Tasks)) {
			if t.ChannelID == ch.ChannelID {
				task := t
				candidate = &task
				break
			}
		}
		if candidate == nil {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			ID:       "rebalance-channel-" + ch.ChannelID,
			Kind:     KindRedistributeChannel,
			Priority: PriorityLow,
			Title:    fmt.Sprintf("Shift work away from '%s'", ch.ChannelName),
			Description: fmt.Sprintf("'%s' carries %s this week against a %s channel average; '%s' has room.",
				ch.ChannelName, schedule.FormatHours(ch.ScheduledHours), schedule.FormatHours(mean), receiver.ChannelName),
			Impact: Impact{AffectedTasks: 1},
			Actions: []Action{{
				Kind:      ActionReschedule,
				TaskID:    candidate.ID,
				TaskTitle: candidate.Title,
				Current:   patchOf(*candidate),
				Reason:    fmt.Sprintf("Smallest open task on '%s'; a candidate for '%s'", ch.ChannelName, receiver.ChannelName),
			}},
			Effort: EffortMedium,
		})
	}
	return suggestions
}

// reduceScope trims the biggest tasks by twenty percent when the overload
// is at least a full day's capacity.
func (a *Advisor) reduceScope(week *schedule.Week, m *workload.Metrics, opts Options) *Suggestion {
	if m.OverloadHours < opts.MaxDailyHours {
		return nil
	}

	var candidates []schedule.Task
	for _, t := range activeTasks(week.Tasks) {
		if t.EstimatedHours >= minReducibleHours {
			candidates = append(candidates, t)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].EstimatedHours != candidates[j].EstimatedHours {
			return candidates[i].EstimatedHours > candidates[j].EstimatedHours
		}
		return candidates[i].ID < candidates[j].ID
	})
	if len(candidates) > maxScopeReductions {
		candidates = candidates[:maxScopeReductions]
	}
	if len(candidates) == 0 {
		return nil
	}

	actions := make([]Action, 0, len(candidates))
	var reduced float64
	for _, task := range candidates {
		newHours := task.EstimatedHours * scopeReductionFactor
		if newHours < minReducedHours {
			newHours = minReducedHours
		}
		actions = append(actions, Action{
			Kind:      ActionReduceHours,
			TaskID:    task.ID,
			TaskTitle: task.Title,
			Current:   patchOf(task),
			Proposed:  &SchedulePatch{Start: task.ScheduledStart, End: task.ScheduledStart.Add(hoursToDuration(newHours)), Hours: newHours},
			Reason:    fmt.Sprintf("Trimming '%s' from %s to %s", task.Title, schedule.FormatHours(task.EstimatedHours), schedule.FormatHours(newHours)),
		})
		reduced += task.EstimatedHours - newHours
	}

	priority := PriorityMedium
	if m.OverloadHours > 2*opts.MaxDailyHours {
		priority = PriorityHigh
	}
	return &Suggestion{
		ID:          "reduce-scope",
		Kind:        KindReduceScope,
		Priority:    priority,
		Title:       fmt.Sprintf("Reduce scope on %d large task(s)", len(actions)),
		Description: fmt.Sprintf("Cutting the biggest tasks by 20%% frees %s this week.", schedule.FormatHours(reduced)),
		Impact: Impact{
			HoursReduced:           reduced,
			UtilizationImprovement: relativeImprovement(reduced, m.CapacityHours),
			AffectedTasks:          len(actions),
		},
		Actions: actions,
		Effort:  EffortHigh,
	}
}

// extendTimeline defers upcoming tasks by a week. Gated the same way as
// scope reduction, and disabled entirely when deadlines are preserved.
func (a *Advisor) extendTimeline(week *schedule.Week, m *workload.Metrics, opts Options) *Suggestion {
	if opts.PreserveDeadlines {
		return nil
	}
	if m.OverloadHours < opts.MaxDailyHours {
		return nil
	}

	var candidates []schedule.Task
	for _, t := range activeTasks(week.Tasks) {
		if t.ScheduledEnd.After(opts.ReferenceTime) {
			candidates = append(candidates, t)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].ScheduledStart.Equal(candidates[j].ScheduledStart) {
			return candidates[i].ScheduledStart.After(candidates[j].ScheduledStart)
		}
		return candidates[i].ID < candidates[j].ID
	})
	if len(candidates) > maxTimelineShifts {
		candidates = candidates[:maxTimelineShifts]
	}
	if len(candidates) == 0 {
		return nil
	}

	actions := make([]Action, 0, len(candidates))
	var deferred float64
	for _, task := range candidates {
		actions = append(actions, Action{
			Kind:      ActionMoveTask,
			TaskID:    task.ID,
			TaskTitle: task.Title,
			Current:   patchOf(task),
			Proposed: &SchedulePatch{
				Start: task.ScheduledStart.AddDate(0, 0, timelineShiftDays),
				End:   task.ScheduledEnd.AddDate(0, 0, timelineShiftDays),
				Hours: task.EstimatedHours,
			},
			Reason: fmt.Sprintf("Deferring '%s' by a week relieves the current overload", task.Title),
		})
		deferred += task.EstimatedHours
	}

	return &Suggestion{
		ID:          "extend-timeline",
		Kind:        KindExtendTimeline,
		Priority:    PriorityMedium,
		Title:       fmt.Sprintf("Defer %d task(s) to next week", len(actions)),
		Description: fmt.Sprintf("Pushing %s of upcoming work out by a week brings this week back toward capacity.", schedule.FormatHours(deferred)),
		Impact: Impact{
			HoursReduced:           deferred,
			UtilizationImprovement: relativeImprovement(deferred, m.CapacityHours),
			AffectedTasks:          len(actions),
		},
		Actions: actions,
		Effort:  EffortLow,
	}
}

// rankSuggestions orders by priority, then by descending utilization
// improvement within equal priority. The sort is stable so generation
// order breaks remaining ties.
func rankSuggestions(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Priority != s[j].Priority {
			return s[i].Priority.rank() < s[j].Priority.rank()
		}
		return s[i].Impact.UtilizationImprovement > s[j].Impact.UtilizationImprovement
	})
}

// relativeImprovement expresses relieved hours as utilization points.
func relativeImprovement(hours, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return hours / capacity * 100
}

// activeTasks filters to tasks that still consume capacity.
func activeTasks(tasks []schedule.Task) []schedule.Task {
	out := make([]schedule.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status.IsActive() {
			out = append(out, t)
		}
	}
	return out
}

// smallestFirst orders by estimate ascending, breaking ties by ID so
// repeated runs pick the same tasks.
func smallestFirst(tasks []schedule.Task) []schedule.Task {
	out := make([]schedule.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EstimatedHours != out[j].EstimatedHours {
			return out[i].EstimatedHours < out[j].EstimatedHours
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func isWorkingDay(name string, workingDays []string) bool {
	for _, d := range workingDays {
		if d == name {
			return true
		}
	}
	return false
}

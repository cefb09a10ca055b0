package rebalance_test

import (
	"math"
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/rebalance"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/felixgeelhaar/cadence/pkg/domain/workload"
)

// weekStart is Monday, January 5th 2026.
var weekStart = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

var workdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func dayTask(id, channelID string, hours float64, dayOffset int) schedule.Task {
	start := schedule.AtClock(weekStart.AddDate(0, 0, dayOffset), 10, 0)
	return schedule.Task{
		ID:             id,
		ChannelID:      channelID,
		Title:          "Task " + id,
		EstimatedHours: hours,
		Status:         schedule.StatusPlanned,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func metricsFor(week *schedule.Week, channels []schedule.Channel, dailyCapacity float64) *workload.Metrics {
	return workload.NewCalculator().Calculate(week, channels, dailyCapacity)
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAdvisor_GenerateEmptyBelowGate(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 40,
		Tasks: []schedule.Task{
			dayTask("t1", "ch1", 4, 0),
			dayTask("t2", "ch1", 4, 1),
			dayTask("t3", "ch1", 4, 2),
			dayTask("t4", "ch1", 4, 3),
			dayTask("t5", "ch1", 4, 4),
		},
	}
	m := metricsFor(week, nil, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:                8,
		AllowCrossChannelRebalancing: true,
		WorkingDays:                  workdays,
	})
	if got == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no suggestions for a comfortable week, got %d", len(got))
	}
}

func TestAdvisor_RedistributeDaily(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	// Monday carries 10h against an 8h day; Tuesday has 1h, the rest are free.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 40,
		Tasks: []schedule.Task{
			dayTask("big", "ch1", 6, 0),
			dayTask("small", "ch1", 4, 0),
			dayTask("tue", "ch1", 1, 1),
		},
	}
	m := metricsFor(week, nil, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:     8,
		PreserveDeadlines: true,
		WorkingDays:       workdays,
	})
	if len(got) != 1 {
		t.Fatalf("expected exactly the daily suggestion, got %d", len(got))
	}

	s := got[0]
	if s.Kind != rebalance.KindRedistributeDaily {
		t.Fatalf("expected redistribute_daily, got %s", s.Kind)
	}
	if len(s.Actions) != 2 {
		t.Fatalf("expected both Monday tasks movable, got %d actions", len(s.Actions))
	}

	// Smallest task moves first, onto the emptiest remaining day.
	first := s.Actions[0]
	if first.TaskID != "small" {
		t.Errorf("expected the 4h task considered first, got %s", first.TaskID)
	}
	if first.Proposed == nil {
		t.Fatalf("move actions must carry a proposed schedule")
	}
	if first.Proposed.Start.Hour() != 9 || first.Proposed.Start.Minute() != 0 {
		t.Errorf("expected a 09:00 start, got %s", first.Proposed.Start)
	}
	if schedule.SameDate(first.Proposed.Start, weekStart) {
		t.Errorf("task moved onto the day it came from")
	}

	second := s.Actions[1]
	if second.TaskID != "big" {
		t.Errorf("expected the 6h task second, got %s", second.TaskID)
	}
	if schedule.SameDate(first.Proposed.Start, second.Proposed.Start) {
		t.Errorf("running load ignored: both tasks landed on %s", first.Proposed.Start)
	}

	// 10h moved exceeds the 8h daily maximum.
	if s.Priority != rebalance.PriorityHigh {
		t.Errorf("expected high priority for 10h moved, got %s", s.Priority)
	}
	if s.Effort != rebalance.EffortLow {
		t.Errorf("expected low effort, got %s", s.Effort)
	}
	if !closeTo(s.Impact.UtilizationImprovement, 25) {
		t.Errorf("expected 25 points improvement (10h of 40h), got %v", s.Impact.UtilizationImprovement)
	}
	if s.Impact.AffectedTasks != 2 {
		t.Errorf("expected 2 affected tasks, got %d", s.Impact.AffectedTasks)
	}
}

func TestAdvisor_RedistributeDailySkipsOversizedTasks(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	// The only movable task is bigger than any target day can absorb.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 40,
		Tasks: []schedule.Task{
			dayTask("huge", "ch1", 9, 0),
			dayTask("tue", "ch1", 5, 1),
			dayTask("wed", "ch1", 5, 2),
			dayTask("thu", "ch1", 5, 3),
			dayTask("fri", "ch1", 5, 4),
		},
	}
	m := metricsFor(week, nil, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours: 8,
		WorkingDays:   workdays,
	})
	for _, s := range got {
		if s.Kind == rebalance.KindRedistributeDaily {
			t.Errorf("expected no daily suggestion when nothing fits, got %+v", s)
		}
	}
}

func TestAdvisor_ChannelRebalancing(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	channels := []schedule.Channel{
		{ID: "ch1", Name: "Main", IsActive: true},
		{ID: "ch2", Name: "Podcast", IsActive: true},
	}
	// 14h on Main, nothing on Podcast; week over its 10h capacity but no
	// single day over 8h.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 10,
		Tasks: []schedule.Task{
			dayTask("t1", "ch1", 7, 0),
			dayTask("t2", "ch1", 7, 1),
		},
	}
	m := metricsFor(week, channels, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:                8,
		AllowCrossChannelRebalancing: true,
		PreserveDeadlines:            true,
		WorkingDays:                  workdays,
	})
	if len(got) != 1 {
		t.Fatalf("expected exactly the channel suggestion, got %d", len(got))
	}

	s := got[0]
	if s.Kind != rebalance.KindRedistributeChannel {
		t.Fatalf("expected redistribute_channel, got %s", s.Kind)
	}
	if s.Priority != rebalance.PriorityLow || s.Effort != rebalance.EffortMedium {
		t.Errorf("expected low priority and medium effort, got %s/%s", s.Priority, s.Effort)
	}
	if len(s.Actions) != 1 {
		t.Fatalf("expected a single advisory action, got %d", len(s.Actions))
	}

	action := s.Actions[0]
	if action.Kind != rebalance.ActionReschedule {
		t.Errorf("expected a reschedule action, got %s", action.Kind)
	}
	if action.Proposed != nil {
		t.Errorf("advisory actions must not carry a proposed schedule")
	}
	if action.TaskID != "t1" {
		t.Errorf("expected the smallest task (tie broken by id), got %s", action.TaskID)
	}

	// Disabled flag suppresses the strategy entirely.
	got = advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:     8,
		PreserveDeadlines: true,
		WorkingDays:       workdays,
	})
	for _, s := range got {
		if s.Kind == rebalance.KindRedistributeChannel {
			t.Errorf("channel rebalancing generated while disabled")
		}
	}
}

func TestAdvisor_ReduceScope(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	// 14h against 10h capacity: 4h over, meeting the 4h daily maximum gate.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 10,
		Tasks: []schedule.Task{
			dayTask("t1", "ch1", 7, 0),
			dayTask("t2", "ch1", 7, 1),
			dayTask("t3", "ch1", 3, 2), // below the 4h reducible floor
		},
	}
	m := metricsFor(week, nil, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:     4,
		PreserveDeadlines: true,
		WorkingDays:       workdays,
	})

	var scope *rebalance.Suggestion
	for i := range got {
		if got[i].Kind == rebalance.KindReduceScope {
			scope = &got[i]
		}
		if got[i].Kind == rebalance.KindExtendTimeline {
			t.Errorf("timeline extension generated despite preserved deadlines")
		}
	}
	if scope == nil {
		t.Fatalf("expected a reduce_scope suggestion, got %+v", got)
	}

	if len(scope.Actions) != 2 {
		t.Fatalf("expected the two 7h tasks only, got %d actions", len(scope.Actions))
	}
	for _, action := range scope.Actions {
		if action.Kind != rebalance.ActionReduceHours {
			t.Errorf("expected reduce_hours actions, got %s", action.Kind)
		}
		if action.Proposed == nil {
			t.Fatalf("reduce actions must carry the new estimate")
		}
		if !closeTo(action.Proposed.Hours, 7*0.8) {
			t.Errorf("expected 20%% reduction to %.1fh, got %v", 7*0.8, action.Proposed.Hours)
		}
		if !action.Proposed.Start.Equal(action.Current.Start) {
			t.Errorf("scope reduction must keep the start")
		}
		wantEnd := action.Current.Start.Add(time.Duration(action.Proposed.Hours * float64(time.Hour)))
		if !action.Proposed.End.Equal(wantEnd) {
			t.Errorf("expected recomputed end %s, got %s", wantEnd, action.Proposed.End)
		}
	}

	// 4h over is not more than twice the 4h daily maximum.
	if scope.Priority != rebalance.PriorityMedium {
		t.Errorf("expected medium priority, got %s", scope.Priority)
	}
	if scope.Effort != rebalance.EffortHigh {
		t.Errorf("expected high effort, got %s", scope.Effort)
	}
	if !closeTo(scope.Impact.HoursReduced, 2.8) {
		t.Errorf("expected 2.8h reduced, got %v", scope.Impact.HoursReduced)
	}
}

func TestAdvisor_ReduceScopeFloor(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	// A 20% cut of 4h would be 3.2h; the 2h floor must not interfere, but a
	// degenerate configuration must never propose below 2h.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 1,
		Tasks: []schedule.Task{
			dayTask("t1", "ch1", 4, 0),
		},
	}
	m := metricsFor(week, nil, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:     1,
		PreserveDeadlines: true,
		WorkingDays:       workdays,
	})

	for _, s := range got {
		if s.Kind != rebalance.KindReduceScope {
			continue
		}
		for _, action := range s.Actions {
			if action.Proposed.Hours < 2 {
				t.Errorf("proposed estimate below the 2h floor: %v", action.Proposed.Hours)
			}
		}
		return
	}
	t.Fatalf("expected a reduce_scope suggestion")
}

func TestAdvisor_ExtendTimeline(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	// Five 3h tasks against 10h capacity: 5h over, gate at 5h daily maximum.
	// All estimates sit below the 4h reducible floor, so scope stays quiet.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 10,
		Tasks: []schedule.Task{
			dayTask("t1", "ch1", 3, 0),
			dayTask("t2", "ch1", 3, 1),
			dayTask("t3", "ch1", 3, 2),
			dayTask("t4", "ch1", 3, 3),
			dayTask("t5", "ch1", 3, 4),
		},
	}
	m := metricsFor(week, nil, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours: 5,
		WorkingDays:   workdays,
		ReferenceTime: weekStart,
	})
	if len(got) != 1 {
		t.Fatalf("expected exactly the timeline suggestion, got %d", len(got))
	}

	s := got[0]
	if s.Kind != rebalance.KindExtendTimeline {
		t.Fatalf("expected extend_timeline, got %s", s.Kind)
	}
	if s.Priority != rebalance.PriorityMedium || s.Effort != rebalance.EffortLow {
		t.Errorf("expected medium priority and low effort, got %s/%s", s.Priority, s.Effort)
	}
	if len(s.Actions) != 2 {
		t.Fatalf("expected 2 deferred tasks, got %d", len(s.Actions))
	}

	// Most recently starting tasks defer first: Friday, then Thursday.
	if s.Actions[0].TaskID != "t5" || s.Actions[1].TaskID != "t4" {
		t.Errorf("expected t5 then t4, got %s then %s", s.Actions[0].TaskID, s.Actions[1].TaskID)
	}
	for _, action := range s.Actions {
		if action.Proposed == nil {
			t.Fatalf("timeline actions must carry a proposed schedule")
		}
		if !action.Proposed.Start.Equal(action.Current.Start.AddDate(0, 0, 7)) {
			t.Errorf("expected start shifted exactly 7 days, got %s", action.Proposed.Start)
		}
		if !action.Proposed.End.Equal(action.Current.End.AddDate(0, 0, 7)) {
			t.Errorf("expected end shifted exactly 7 days, got %s", action.Proposed.End)
		}
	}
	if !closeTo(s.Impact.HoursReduced, 6) {
		t.Errorf("expected 6h deferred, got %v", s.Impact.HoursReduced)
	}
}

func TestAdvisor_RankingByPriorityThenImpact(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	channels := []schedule.Channel{
		{ID: "ch1", Name: "Main", IsActive: true},
		{ID: "ch2", Name: "Podcast", IsActive: true},
	}
	// 30h against 10h: 20h over, more than twice the 8h daily maximum, so
	// scope reduction ranks high; timeline is medium; channel advice is low.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 10,
		Tasks: []schedule.Task{
			dayTask("t1", "ch1", 6, 0),
			dayTask("t2", "ch1", 6, 1),
			dayTask("t3", "ch1", 6, 2),
			dayTask("t4", "ch1", 6, 3),
			dayTask("t5", "ch1", 6, 4),
		},
	}
	m := metricsFor(week, channels, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:                8,
		AllowCrossChannelRebalancing: true,
		WorkingDays:                  workdays,
		ReferenceTime:                weekStart,
	})
	if len(got) != 3 {
		t.Fatalf("expected scope, timeline, and channel suggestions, got %d", len(got))
	}
	wantOrder := []rebalance.SuggestionKind{
		rebalance.KindReduceScope,
		rebalance.KindExtendTimeline,
		rebalance.KindRedistributeChannel,
	}
	for i, kind := range wantOrder {
		if got[i].Kind != kind {
			t.Errorf("position %d: expected %s, got %s", i, kind, got[i].Kind)
		}
	}
	if got[0].Priority != rebalance.PriorityHigh {
		t.Errorf("expected high priority scope reduction at 20h over, got %s", got[0].Priority)
	}
}

func TestAdvisor_EqualPrioritySortsByImprovement(t *testing.T) {
	advisor := rebalance.NewAdvisor()

	// Monday is 11h against 8h. The 2h task moves (improvement 20 points);
	// trimming the 9h task frees 1.8h (improvement 18 points). Both medium.
	week := &schedule.Week{
		StartDate:     weekStart,
		CapacityHours: 10,
		Tasks: []schedule.Task{
			dayTask("big", "ch1", 9, 0),
			dayTask("tiny", "ch1", 2, 0),
			dayTask("tue", "ch1", 3, 1),
			dayTask("wed", "ch1", 3, 2),
			dayTask("thu", "ch1", 3, 3),
		},
	}
	m := metricsFor(week, nil, 8)

	got := advisor.Generate(week, m, rebalance.Options{
		MaxDailyHours:     8,
		PreserveDeadlines: true,
		WorkingDays:       workdays,
	})
	if len(got) != 2 {
		t.Fatalf("expected daily and scope suggestions, got %d", len(got))
	}
	if got[0].Priority != got[1].Priority {
		t.Fatalf("scenario expects equal priorities, got %s and %s", got[0].Priority, got[1].Priority)
	}
	if got[0].Impact.UtilizationImprovement < got[1].Impact.UtilizationImprovement {
		t.Errorf("equal priority must sort by improvement: %v before %v",
			got[0].Impact.UtilizationImprovement, got[1].Impact.UtilizationImprovement)
	}
	if got[0].Kind != rebalance.KindRedistributeDaily {
		t.Errorf("expected the 20-point move first, got %s", got[0].Kind)
	}
}

package workload

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// DefaultDailyCapacityHours is assumed when no working days are configured.
const DefaultDailyCapacityHours = 8

// trendStableBand is the utilization change, in points, below which the
// week-over-week trend counts as stable.
const trendStableBand = 5.0

// Calculator is a domain service that derives workload metrics for a week.
// All methods are pure: identical inputs produce identical outputs.
type Calculator struct{}

// NewCalculator creates a new Calculator instance.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// TotalScheduledHours sums the estimates of tasks that still consume
// capacity. Completed and overdue tasks contribute nothing.
func (c *Calculator) TotalScheduledHours(tasks []schedule.Task) float64 {
	var total float64
	for _, t := range tasks {
		if t.Status.IsActive() {
			total += t.EstimatedHours
		}
	}
	return total
}

// DailyBreakdown buckets tasks into the seven days starting at weekStart.
// A task lands on the calendar date of its scheduled start; time of day is
// ignored. Per-day hours count every status, so a heavy day stays visible
// after its work is done. A day is overloaded when its hours strictly
// exceed dailyCapacity.
func (c *Calculator) DailyBreakdown(tasks []schedule.Task, weekStart time.Time, dailyCapacity float64) []DayLoad {
	start := schedule.DateOf(weekStart)
	days := make([]DayLoad, 7)
	for i := range days {
		date := start.AddDate(0, 0, i)
		day := DayLoad{
			Date:    date,
			DayName: schedule.DayName(date),
			Tasks:   []schedule.Task{},
		}
		for _, t := range tasks {
			if schedule.SameDate(t.ScheduledStart, date) {
				day.Tasks = append(day.Tasks, t)
				day.ScheduledHours += t.EstimatedHours
			}
		}
		day.IsOverloaded = day.ScheduledHours > dailyCapacity
		days[i] = day
	}
	return days
}

// ChannelBreakdown aggregates per channel. Every channel gets an entry,
// even with no tasks. Tasks referencing an unknown channel are excluded;
// flagging them is a workspace integrity concern, not a calculation one.
func (c *Calculator) ChannelBreakdown(tasks []schedule.Task, channels []schedule.Channel) []ChannelLoad {
	loads := make([]ChannelLoad, 0, len(channels))
	for _, ch := range channels {
		load := ChannelLoad{ChannelID: ch.ID, ChannelName: ch.Name}
		completed := 0
		for _, t := range tasks {
			if t.ChannelID != ch.ID {
				continue
			}
			load.TaskCount++
			if t.Status.IsActive() {
				load.ScheduledHours += t.EstimatedHours
			}
			if t.Status == schedule.StatusCompleted {
				completed++
			}
		}
		if load.TaskCount > 0 {
			load.CompletionRate = float64(completed) / float64(load.TaskCount) * 100
		}
		loads = append(loads, load)
	}
	return loads
}

// Calculate produces the full workload picture for a week.
func (c *Calculator) Calculate(week *schedule.Week, channels []schedule.Channel, dailyCapacity float64) *Metrics {
	total := c.TotalScheduledHours(week.Tasks)

	m := &Metrics{
		WeekStart:           week.StartDate,
		TotalScheduledHours: total,
		CapacityHours:       week.CapacityHours,
		Daily:               c.DailyBreakdown(week.Tasks, week.StartDate, dailyCapacity),
		Channels:            c.ChannelBreakdown(week.Tasks, channels),
	}

	// Guard against division by zero; a zero-capacity week reads as 0%.
	if week.CapacityHours > 0 {
		m.UtilizationPercent = total / week.CapacityHours * 100
	}
	if total > week.CapacityHours {
		m.OverloadHours = total - week.CapacityHours
		m.IsOverloaded = true
	}
	return m
}

// DailyCapacity spreads the weekly capacity evenly over the configured
// working days.
func (c *Calculator) DailyCapacity(weeklyCapacity float64, workingDays []string) float64 {
	if len(workingDays) == 0 {
		return DefaultDailyCapacityHours
	}
	return weeklyCapacity / float64(len(workingDays))
}

// Trend compares this week's utilization with the previous week's. Changes
// smaller than five utilization points read as stable.
func (c *Calculator) Trend(current, previous *Metrics) WorkloadTrend {
	if previous == nil {
		return WorkloadTrend{
			Direction:   TrendStable,
			Description: "no previous data",
		}
	}

	change := current.UtilizationPercent - previous.UtilizationPercent
	trend := WorkloadTrend{ChangePercent: change}
	switch {
	case change >= trendStableBand:
		trend.Direction = TrendIncreasing
		trend.Description = fmt.Sprintf("utilization up %.1f points from last week", change)
	case change <= -trendStableBand:
		trend.Direction = TrendDecreasing
		trend.Description = fmt.Sprintf("utilization down %.1f points from last week", -change)
	default:
		trend.Direction = TrendStable
		trend.Description = "utilization roughly level with last week"
	}
	return trend
}

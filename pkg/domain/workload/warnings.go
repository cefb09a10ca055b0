package workload

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// Severity thresholds for the weekly overload warning, in utilization percent.
const (
	utilizationHighPercent   = 150
	utilizationMediumPercent = 120
)

// channelImbalanceFactor flags a channel whose scheduled hours exceed this
// multiple of the mean across all channels.
const channelImbalanceFactor = 1.5

// defaultWorkingDays is assumed when the caller provides none.
var defaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DetectWarnings derives capacity warnings from computed metrics. Weekly,
// daily, and channel warnings are independent and can co-occur. Daily
// warnings are only raised for working days; a loaded Saturday in a
// Monday-to-Friday setup is deliberate, not a problem.
func (c *Calculator) DetectWarnings(m *Metrics, workingDays []string) []Warning {
	if len(workingDays) == 0 {
		workingDays = defaultWorkingDays
	}

	warnings := make([]Warning, 0)

	if m.IsOverloaded {
		severity := SeverityLow
		switch {
		case m.UtilizationPercent >= utilizationHighPercent:
			severity = SeverityHigh
		case m.UtilizationPercent >= utilizationMediumPercent:
			severity = SeverityMedium
		}
		warnings = append(warnings, Warning{
			Kind:     WarningWeekly,
			Severity: severity,
			Message: fmt.Sprintf("Week of %s is overloaded: %s scheduled against %s capacity (%.0f%%).",
				m.WeekStart.Format("Jan 2"),
				schedule.FormatHours(m.TotalScheduledHours),
				schedule.FormatHours(m.CapacityHours),
				m.UtilizationPercent),
			SuggestedAction: "Run 'cadence suggest' for rebalancing options.",
		})
	}

	for _, day := range m.Daily {
		if !day.IsOverloaded || !isWorkingDay(day.DayName, workingDays) {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:     WarningDaily,
			Severity: SeverityMedium,
			Message: fmt.Sprintf("%s (%s) is overloaded with %s scheduled.",
				day.DayName,
				day.Date.Format("Jan 2"),
				schedule.FormatHours(day.ScheduledHours)),
			AffectedDate:    day.Date.Format("2006-01-02"),
			SuggestedAction: "Move a task to a lighter day.",
		})
	}

	if mean := meanChannelHours(m.Channels); mean > 0 {
		for _, ch := range m.Channels {
			if ch.ScheduledHours <= mean*channelImbalanceFactor {
				continue
			}
			warnings = append(warnings, Warning{
				Kind:     WarningChannel,
				Severity: SeverityLow,
				Message: fmt.Sprintf("Channel '%s' takes %s this week, well above the %s channel average.",
					ch.ChannelName,
					schedule.FormatHours(ch.ScheduledHours),
					schedule.FormatHours(mean)),
				AffectedChannel: ch.ChannelID,
				SuggestedAction: "Consider spreading work across channels or trimming scope.",
			})
		}
	}

	return warnings
}

// meanChannelHours averages scheduled hours over every channel, including
// channels with no work at all.
func meanChannelHours(channels []ChannelLoad) float64 {
	if len(channels) == 0 {
		return 0
	}
	var sum float64
	for _, ch := range channels {
		sum += ch.ScheduledHours
	}
	return sum / float64(len(channels))
}

func isWorkingDay(name string, workingDays []string) bool {
	for _, d := range workingDays {
		if d == name {
			return true
		}
	}
	return false
}

package workload

import (
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

type WarningKind string

const (
	WarningWeekly  WarningKind = "weekly"  // whole week over capacity
	WarningDaily   WarningKind = "daily"   // a single working day over capacity
	WarningChannel WarningKind = "channel" // one channel dominating the week
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Warning represents a single detected capacity problem.
type Warning struct {
	Kind            WarningKind `json:"kind" yaml:"kind"`
	Severity        Severity    `json:"severity" yaml:"severity"`
	Message         string      `json:"message" yaml:"message"`
	AffectedDate    string      `json:"affected_date,omitempty" yaml:"affected_date,omitempty"` // "2006-01-02"
	AffectedChannel string      `json:"affected_channel,omitempty" yaml:"affected_channel,omitempty"`
	SuggestedAction string      `json:"suggested_action" yaml:"suggested_action"`
}

// DayLoad is the workload of one calendar day within the analyzed week.
type DayLoad struct {
	Date           time.Time       `json:"date" yaml:"date"`
	DayName        string          `json:"day_name" yaml:"day_name"`
	ScheduledHours float64         `json:"scheduled_hours" yaml:"scheduled_hours"`
	Tasks          []schedule.Task `json:"tasks" yaml:"tasks"`
	IsOverloaded   bool            `json:"is_overloaded" yaml:"is_overloaded"`
}

// ChannelLoad is the workload of one channel within the analyzed week.
// ScheduledHours counts active tasks only; TaskCount and CompletionRate
// cover every status so finished work still shows up.
type ChannelLoad struct {
	ChannelID      string  `json:"channel_id" yaml:"channel_id"`
	ChannelName    string  `json:"channel_name" yaml:"channel_name"`
	ScheduledHours float64 `json:"scheduled_hours" yaml:"scheduled_hours"`
	TaskCount      int     `json:"task_count" yaml:"task_count"`
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate"`
}

// Metrics is the full workload picture of one week.
type Metrics struct {
	WeekStart           time.Time     `json:"week_start" yaml:"week_start"`
	TotalScheduledHours float64       `json:"total_scheduled_hours" yaml:"total_scheduled_hours"`
	CapacityHours       float64       `json:"capacity_hours" yaml:"capacity_hours"`
	UtilizationPercent  float64       `json:"utilization_percent" yaml:"utilization_percent"`
	OverloadHours       float64       `json:"overload_hours" yaml:"overload_hours"`
	IsOverloaded        bool          `json:"is_overloaded" yaml:"is_overloaded"`
	Daily               []DayLoad     `json:"daily" yaml:"daily"`
	Channels            []ChannelLoad `json:"channels" yaml:"channels"`
}

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// WorkloadTrend compares this week's utilization with the previous week's.
type WorkloadTrend struct {
	Direction     TrendDirection `json:"direction" yaml:"direction"`
	ChangePercent float64        `json:"change_percent" yaml:"change_percent"` // utilization points
	Description   string         `json:"description" yaml:"description"`
}

// HasHighSeverity reports whether any warning is severity high.
func HasHighSeverity(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

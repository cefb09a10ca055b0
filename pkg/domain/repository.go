package domain

import (
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
)

// WorkspaceRepository handles the persistence of cadence artifacts in the .cadence/ directory.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool
	SaveChannels(channels []schedule.Channel) error
	LoadChannels() ([]schedule.Channel, error)
	SaveTemplates(templates []schedule.Template) error
	LoadTemplates() ([]schedule.Template, error)
	SaveWeek(week *schedule.Week) error
	LoadWeek() (*schedule.Week, error)
	SaveSettings(cfg *PlannerSettings) error
	LoadSettings() (*PlannerSettings, error)
	AppendHistory(snapshot MetricSnapshot) error
	LoadHistory() ([]MetricSnapshot, error)
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}

// PlannerSettings is the serialized representation of settings.yaml
type PlannerSettings struct {
	WeeklyCapacityHours          float64  `yaml:"weekly_capacity_hours"`
	MaxDailyHours                float64  `yaml:"max_daily_hours"`
	WorkingDays                  []string `yaml:"working_days"`
	WorkingHoursStart            string   `yaml:"working_hours_start"` // "HH:MM"
	WorkingHoursEnd              string   `yaml:"working_hours_end"`   // "HH:MM"
	AllowTaskSplitting           bool     `yaml:"allow_task_splitting"`
	AllowCrossChannelRebalancing bool     `yaml:"allow_cross_channel_rebalancing"`
	PreserveDeadlines            bool     `yaml:"preserve_deadlines"`
}

// DefaultPlannerSettings returns the settings written by `cadence init`.
func DefaultPlannerSettings() *PlannerSettings {
	return &PlannerSettings{
		WeeklyCapacityHours:          40,
		MaxDailyHours:                8,
		WorkingDays:                  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		WorkingHoursStart:            "09:00",
		WorkingHoursEnd:              "17:00",
		AllowTaskSplitting:           false,
		AllowCrossChannelRebalancing: true,
		PreserveDeadlines:            false,
	}
}

// Normalize fills zero-valued fields with defaults so hand-edited settings
// files with missing keys stay usable.
func (s *PlannerSettings) Normalize() {
	def := DefaultPlannerSettings()
	if s.WeeklyCapacityHours <= 0 {
		s.WeeklyCapacityHours = def.WeeklyCapacityHours
	}
	if s.MaxDailyHours <= 0 {
		s.MaxDailyHours = def.MaxDailyHours
	}
	if len(s.WorkingDays) == 0 {
		s.WorkingDays = def.WorkingDays
	}
	if s.WorkingHoursStart == "" {
		s.WorkingHoursStart = def.WorkingHoursStart
	}
	if s.WorkingHoursEnd == "" {
		s.WorkingHoursEnd = def.WorkingHoursEnd
	}
}

// MetricSnapshot is one recorded analysis result, kept in history.json so
// week-over-week trends survive restarts.
type MetricSnapshot struct {
	WeekStart           time.Time `json:"week_start"`
	TotalScheduledHours float64   `json:"total_scheduled_hours"`
	CapacityHours       float64   `json:"capacity_hours"`
	UtilizationPercent  float64   `json:"utilization_percent"`
	RecordedAt          time.Time `json:"recorded_at"`
}

package application

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/pkg/domain"
	"github.com/felixgeelhaar/cadence/pkg/domain/conflict"
	"github.com/felixgeelhaar/cadence/pkg/domain/rebalance"
	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/felixgeelhaar/cadence/pkg/domain/workload"
)

// PlannerService runs the analysis engines over the persisted week. The
// engines themselves are pure; this service feeds them workspace state and
// records the outcomes.
type PlannerService struct {
	repo     domain.WorkspaceRepository
	audit    domain.AuditLogger
	calc     *workload.Calculator
	detector *conflict.Detector
	advisor  *rebalance.Advisor
}

func NewPlannerService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *PlannerService {
	return &PlannerService{
		repo:     repo,
		audit:    audit,
		calc:     workload.NewCalculator(),
		detector: conflict.NewDetector(),
		advisor:  rebalance.NewAdvisor(),
	}
}

// AnalysisReport bundles everything `cadence analyze` renders.
type AnalysisReport struct {
	Metrics  *workload.Metrics      `json:"metrics" yaml:"metrics"`
	Warnings []workload.Warning     `json:"warnings" yaml:"warnings"`
	Trend    workload.WorkloadTrend `json:"trend" yaml:"trend"`
}

// analysisInputs is the loaded workspace state every engine run starts from.
type analysisInputs struct {
	week     *schedule.Week
	channels []schedule.Channel
	settings *domain.PlannerSettings
	metrics  *workload.Metrics
}

func (s *PlannerService) computeMetrics() (*analysisInputs, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}
	channels, err := s.repo.LoadChannels()
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.LoadSettings()
	if err != nil {
		return nil, err
	}

	dailyCapacity := s.calc.DailyCapacity(settings.WeeklyCapacityHours, settings.WorkingDays)
	return &analysisInputs{
		week:     week,
		channels: channels,
		settings: settings,
		metrics:  s.calc.Calculate(week, channels, dailyCapacity),
	}, nil
}

// Analyze computes workload metrics and warnings for the current week,
// compares against the most recent prior week on record, and appends a
// snapshot to the history so next week's run has something to compare to.
func (s *PlannerService) Analyze() (*AnalysisReport, error) {
	in, err := s.computeMetrics()
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{
		Metrics:  in.metrics,
		Warnings: s.calc.DetectWarnings(in.metrics, in.settings.WorkingDays),
		Trend:    s.calc.Trend(in.metrics, s.previousMetrics(in.week.StartDate)),
	}

	if err := s.repo.AppendHistory(domain.MetricSnapshot{
		WeekStart:           in.metrics.WeekStart,
		TotalScheduledHours: in.metrics.TotalScheduledHours,
		CapacityHours:       in.metrics.CapacityHours,
		UtilizationPercent:  in.metrics.UtilizationPercent,
		RecordedAt:          time.Now(),
	}); err != nil {
		return nil, err
	}

	if s.audit != nil {
		_ = s.audit.Log("analysis.run", map[string]interface{}{
			"week_start":  in.metrics.WeekStart.Format("2006-01-02"),
			"utilization": fmt.Sprintf("%.1f", in.metrics.UtilizationPercent),
			"overloaded":  fmt.Sprintf("%t", in.metrics.IsOverloaded),
		})
	}
	return report, nil
}

// Trend compares the current week's utilization with the last analyzed
// prior week. Unlike Analyze it records nothing.
func (s *PlannerService) Trend() (workload.WorkloadTrend, error) {
	in, err := s.computeMetrics()
	if err != nil {
		return workload.WorkloadTrend{}, err
	}
	return s.calc.Trend(in.metrics, s.previousMetrics(in.week.StartDate)), nil
}

// previousMetrics rebuilds enough of an earlier week's metrics from the
// history for a trend comparison. Returns nil when no earlier week was
// ever analyzed.
func (s *PlannerService) previousMetrics(weekStart time.Time) *workload.Metrics {
	history, err := s.repo.LoadHistory()
	if err != nil {
		return nil
	}

	var prev *domain.MetricSnapshot
	for i := range history {
		snap := &history[i]
		if !snap.WeekStart.Before(weekStart) {
			continue
		}
		if prev == nil || snap.WeekStart.After(prev.WeekStart) ||
			(snap.WeekStart.Equal(prev.WeekStart) && snap.RecordedAt.After(prev.RecordedAt)) {
			prev = snap
		}
	}
	if prev == nil {
		return nil
	}
	return &workload.Metrics{
		WeekStart:           prev.WeekStart,
		TotalScheduledHours: prev.TotalScheduledHours,
		CapacityHours:       prev.CapacityHours,
		UtilizationPercent:  prev.UtilizationPercent,
	}
}

// Conflicts lists every overlapping task pair in the current week.
func (s *PlannerService) Conflicts() ([]conflict.Conflict, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}
	return s.detector.FindConflicts(week.Tasks), nil
}

// FreeSlots finds open windows of the requested length between startDate
// and endDate, bounded by the configured working hours.
func (s *PlannerService) FreeSlots(durationHours float64, startDate, endDate time.Time) ([]conflict.TimeSlot, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.LoadSettings()
	if err != nil {
		return nil, err
	}
	hours := conflict.WorkingHours{Start: settings.WorkingHoursStart, End: settings.WorkingHoursEnd}
	return s.detector.FindAvailableSlots(durationHours, week.Tasks, startDate, endDate, hours)
}

// Alternatives proposes replacement slots for one scheduled task.
func (s *PlannerService) Alternatives(taskID string) ([]conflict.SlotSuggestion, error) {
	week, err := s.repo.LoadWeek()
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.LoadSettings()
	if err != nil {
		return nil, err
	}

	task := week.TaskByID(taskID)
	if task == nil {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	hours := conflict.WorkingHours{Start: settings.WorkingHoursStart, End: settings.WorkingHoursEnd}
	return s.detector.SuggestAlternatives(*task, week.Tasks, hours)
}

// Suggest generates ranked rebalancing suggestions for the current week.
func (s *PlannerService) Suggest() ([]rebalance.Suggestion, error) {
	in, err := s.computeMetrics()
	if err != nil {
		return nil, err
	}
	return s.advisor.Generate(in.week, in.metrics, s.advisorOptions(in.settings)), nil
}

// ApplySuggestion regenerates the current suggestions, applies the one
// matching id to the week, and persists the result. Suggestion IDs are
// deterministic, so a suggestion surfaced by Suggest stays addressable as
// long as the schedule has not changed underneath it.
func (s *PlannerService) ApplySuggestion(id string) (*rebalance.ApplyResult, error) {
	in, err := s.computeMetrics()
	if err != nil {
		return nil, err
	}

	suggestions := s.advisor.Generate(in.week, in.metrics, s.advisorOptions(in.settings))
	var match *rebalance.Suggestion
	for i := range suggestions {
		if suggestions[i].ID == id {
			match = &suggestions[i]
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrSuggestionNotFound, id)
	}

	tasks, result := s.advisor.Apply(*match, in.week)
	in.week.Tasks = tasks
	in.week.UpdatedAt = time.Now()
	if err := s.repo.SaveWeek(in.week); err != nil {
		return nil, err
	}

	if s.audit != nil {
		_ = s.audit.Log("suggestion.apply", map[string]interface{}{
			"suggestion": match.ID,
			"kind":       string(match.Kind),
			"summary":    result.Summary,
		})
	}
	return &result, nil
}

func (s *PlannerService) advisorOptions(settings *domain.PlannerSettings) rebalance.Options {
	return rebalance.Options{
		MaxDailyHours:                settings.MaxDailyHours,
		AllowTaskSplitting:           settings.AllowTaskSplitting,
		AllowCrossChannelRebalancing: settings.AllowCrossChannelRebalancing,
		PreserveDeadlines:            settings.PreserveDeadlines,
		WorkingDays:                  settings.WorkingDays,
		ReferenceTime:                time.Now(),
	}
}

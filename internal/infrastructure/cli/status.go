package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/felixgeelhaar/cadence/pkg/domain/workload"
	"github.com/spf13/cobra"
)

// Flag variables for status command
var (
	statusFilter  string
	channelFilter string
	statusLimit   int
	statusJSON    bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a high-level summary of the current week",
	Long: `Show a high-level summary of the current week.

Use flags to filter tasks:
  --status, -s   Filter by status (planned,in_progress,completed,overdue)
  --channel, -c  Filter by channel ID or name
  --limit, -n    Limit number of tasks shown
  --json         Output in JSON format

Examples:
  cadence status --status planned
  cadence status -s in_progress,overdue -c podcast
  cadence status --json`,
	RunE: runStatusCmd,
}

// statusJSONOutput represents the JSON output format for status
type statusJSONOutput struct {
	WeekStart      string           `json:"week_start"`
	CapacityHours  float64          `json:"capacity_hours"`
	ScheduledHours float64          `json:"scheduled_hours"`
	Utilization    float64          `json:"utilization_percent"`
	Overloaded     bool             `json:"overloaded"`
	Counts         map[string]int   `json:"counts"`
	Tasks          []taskJSONOutput `json:"tasks,omitempty"`
}

type taskJSONOutput struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Status  string  `json:"status"`
	Channel string  `json:"channel"`
	Start   string  `json:"start"`
	Hours   float64 `json:"hours"`
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	repo := services.Workspace.Repo

	week, err := repo.LoadWeek()
	if err != nil {
		return err
	}

	channels, err := repo.LoadChannels()
	if err != nil {
		return err
	}

	settings, err := repo.LoadSettings()
	if err != nil {
		return err
	}

	calc := workload.NewCalculator()
	dailyCapacity := calc.DailyCapacity(settings.WeeklyCapacityHours, settings.WorkingDays)
	metrics := calc.Calculate(week, channels, dailyCapacity)

	if statusJSON {
		return outputStatusJSON(week, channels, metrics)
	}
	return outputStatusText(week, channels, metrics)
}

func outputStatusJSON(week *schedule.Week, channels []schedule.Channel, metrics *workload.Metrics) error {
	counts := countTasksByStatus(week.Tasks)
	output := statusJSONOutput{
		WeekStart:      week.StartDate.Format("2006-01-02"),
		CapacityHours:  metrics.CapacityHours,
		ScheduledHours: metrics.TotalScheduledHours,
		Utilization:    metrics.UtilizationPercent,
		Overloaded:     metrics.IsOverloaded,
		Counts: map[string]int{
			"planned":     counts[schedule.StatusPlanned],
			"in_progress": counts[schedule.StatusInProgress],
			"completed":   counts[schedule.StatusCompleted],
			"overdue":     counts[schedule.StatusOverdue],
		},
	}

	names := channelNames(channels)
	for _, t := range sortTasks(filterTasks(week.Tasks, channels)) {
		output.Tasks = append(output.Tasks, taskJSONOutput{
			ID:      t.ID,
			Title:   t.Title,
			Status:  string(t.Status),
			Channel: names[t.ChannelID],
			Start:   t.ScheduledStart.Format("2006-01-02 15:04"),
			Hours:   t.EstimatedHours,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputStatusText(week *schedule.Week, channels []schedule.Channel, metrics *workload.Metrics) error {
	if week.StartDate.IsZero() {
		fmt.Println("No schedule yet. Run 'cadence task add' to plan your first task.")
		return nil
	}

	fmt.Printf("Week of %s\n", week.StartDate.Format("2006-01-02"))
	fmt.Printf("Capacity: %.1fh scheduled / %.1fh available (%.1f%% utilized)\n",
		metrics.TotalScheduledHours, metrics.CapacityHours, metrics.UtilizationPercent)
	if metrics.IsOverloaded {
		fmt.Printf("OVERLOADED by %.1fh. Run 'cadence suggest' for rebalancing options.\n", metrics.OverloadHours)
	}

	counts := countTasksByStatus(week.Tasks)
	fmt.Printf("\nTasks: %d\n", len(week.Tasks))
	fmt.Printf("- Planned:     %d\n", counts[schedule.StatusPlanned])
	fmt.Printf("- In Progress: %d\n", counts[schedule.StatusInProgress])
	fmt.Printf("- Completed:   %d\n", counts[schedule.StatusCompleted])
	fmt.Printf("- Overdue:     %d\n", counts[schedule.StatusOverdue])

	filtered := filterTasks(week.Tasks, channels)
	if hasActiveFilters() {
		fmt.Printf("\nFiltered Tasks (%d matching)\n", len(filtered))
	} else {
		fmt.Println("\nTask Overview")
	}
	fmt.Println("----------------")

	names := channelNames(channels)
	for _, t := range sortTasks(filtered) {
		prefix := getStatusPrefix(t.Status)
		channel := names[t.ChannelID]
		if channel == "" {
			channel = t.ChannelID
		}
		fmt.Printf("%s %-9s %5.1fh  %-32s (%s)\n",
			prefix, t.ScheduledStart.Format("Mon 15:04"), t.EstimatedHours, t.Title, channel)
	}
	if len(filtered) == 0 && hasActiveFilters() {
		fmt.Println("  No tasks match the current filters.")
	}

	fmt.Printf("\nAudit Trail: .cadence/events.jsonl\n")
	return nil
}

// filterTasks applies all active filters to the task list
func filterTasks(tasks []schedule.Task, channels []schedule.Channel) []schedule.Task {
	var statusFilters []schedule.TaskStatus
	if statusFilter != "" {
		for _, s := range strings.Split(statusFilter, ",") {
			if parsed, err := schedule.ParseTaskStatus(strings.TrimSpace(s)); err == nil {
				statusFilters = append(statusFilters, parsed)
			}
		}
	}

	channelID := ""
	if channelFilter != "" {
		channelID = channelFilter
		for _, c := range channels {
			if c.ID == channelFilter || strings.EqualFold(c.Name, channelFilter) {
				channelID = c.ID
				break
			}
		}
	}

	var filtered []schedule.Task
	for _, t := range tasks {
		if len(statusFilters) > 0 && !containsStatus(statusFilters, t.Status) {
			continue
		}
		if channelID != "" && t.ChannelID != channelID {
			continue
		}
		filtered = append(filtered, t)
	}

	if statusLimit > 0 && len(filtered) > statusLimit {
		filtered = filtered[:statusLimit]
	}
	return filtered
}

// sortTasks orders tasks chronologically, earliest first
func sortTasks(tasks []schedule.Task) []schedule.Task {
	sorted := make([]schedule.Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].ScheduledStart.Equal(sorted[j].ScheduledStart) {
			return sorted[i].ScheduledStart.Before(sorted[j].ScheduledStart)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func countTasksByStatus(tasks []schedule.Task) map[schedule.TaskStatus]int {
	counts := make(map[schedule.TaskStatus]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// getStatusPrefix returns the display prefix for a status
func getStatusPrefix(status schedule.TaskStatus) string {
	switch status {
	case schedule.StatusCompleted:
		return "[D]"
	case schedule.StatusInProgress:
		return "[W]"
	case schedule.StatusOverdue:
		return "[!]"
	default:
		return "[ ]"
	}
}

func channelNames(channels []schedule.Channel) map[string]string {
	names := make(map[string]string, len(channels))
	for _, c := range channels {
		names[c.ID] = c.Name
	}
	return names
}

func containsStatus(statuses []schedule.TaskStatus, s schedule.TaskStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

// hasActiveFilters returns true if any filter is active
func hasActiveFilters() bool {
	return statusFilter != "" || channelFilter != "" || statusLimit > 0
}

func init() {
	statusCmd.Flags().StringVarP(&statusFilter, "status", "s", "",
		"Filter by status (planned,in_progress,completed,overdue)")
	statusCmd.Flags().StringVarP(&channelFilter, "channel", "c", "",
		"Filter by channel ID or name")
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 0,
		"Limit number of tasks shown")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false,
		"Output in JSON format")

	RootCmd.AddCommand(statusCmd)
}

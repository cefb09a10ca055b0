package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/cadence/internal/infrastructure/watch"
	"github.com/felixgeelhaar/cadence/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/cadence/pkg/application"
	"github.com/felixgeelhaar/cadence/pkg/domain/conflict"
	"github.com/felixgeelhaar/cadence/pkg/domain/workload"
	"github.com/felixgeelhaar/cadence/pkg/storage"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and re-check the schedule on every change",
	Long: `Watch monitors the .cadence directory and prints a fresh capacity
summary whenever the schedule, channels, or settings change, whether
through another cadence process or a direct edit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		workspace := wiring.NewWorkspace(root)
		if !workspace.Repo.IsInitialized() {
			return MapError(fmt.Errorf("cannot watch: %w", application.ErrNotInitialized))
		}

		recheck := func(label string) {
			summary, err := scheduleSummary(workspace.Repo)
			if err != nil {
				fmt.Printf("[%s] %s: %v\n", time.Now().Format("15:04:05"), label, err)
				return
			}
			fmt.Printf("[%s] %s: %s\n", time.Now().Format("15:04:05"), label, summary)
		}

		watcher, err := watch.NewWorkspaceWatcher(watchDebounce, watch.PlanningArtifacts(), func(e watch.ChangeEvent) {
			recheck(e.File + " " + e.ChangeType)
		})
		if err != nil {
			return err
		}

		dir := filepath.Join(root, storage.CadenceDir)
		if err := watcher.Watch(dir); err != nil {
			return err
		}

		fmt.Printf("Watching %s for changes...\n", dir)
		recheck("startup")

		if os.Getenv("CADENCE_WATCH_ONCE") == "true" {
			return nil
		}
		return watcher.Run(cmd.Context())
	},
}

// scheduleSummary renders the one-line capacity picture printed on every
// change.
func scheduleSummary(repo *storage.FilesystemRepository) (string, error) {
	week, err := repo.LoadWeek()
	if err != nil {
		return "", err
	}
	channels, err := repo.LoadChannels()
	if err != nil {
		return "", err
	}
	settings, err := repo.LoadSettings()
	if err != nil {
		return "", err
	}

	calc := workload.NewCalculator()
	dailyCapacity := calc.DailyCapacity(settings.WeeklyCapacityHours, settings.WorkingDays)
	metrics := calc.Calculate(week, channels, dailyCapacity)
	conflicts := conflict.NewDetector().FindConflicts(week.Tasks)

	summary := fmt.Sprintf("%.1fh scheduled (%.1f%% of capacity), %d conflicts",
		metrics.TotalScheduledHours, metrics.UtilizationPercent, len(conflicts))
	if metrics.IsOverloaded {
		summary += fmt.Sprintf(", OVERLOADED by %.1fh", metrics.OverloadHours)
	}
	return summary, nil
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"How long to wait after the last change before re-checking")
	RootCmd.AddCommand(watchCmd)
}

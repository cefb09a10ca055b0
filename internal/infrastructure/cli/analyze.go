package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the current week's workload and record a snapshot",
	Long: `Analyze computes utilization, daily and per-channel load, and capacity
warnings for the current week. Each run appends a metric snapshot to the
workspace history, which powers 'cadence trend'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		report, err := services.Planner.Analyze()
		if err != nil {
			return MapError(fmt.Errorf("failed to analyze week: %w", err))
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		m := report.Metrics
		fmt.Printf("Workload for the week of %s\n", m.WeekStart.Format("2006-01-02"))
		fmt.Printf("Scheduled: %.1fh / %.1fh capacity (%.1f%% utilized)\n",
			m.TotalScheduledHours, m.CapacityHours, m.UtilizationPercent)
		if m.IsOverloaded {
			fmt.Printf("Overloaded by %.1fh.\n", m.OverloadHours)
		}

		fmt.Println("\nDaily breakdown:")
		for _, day := range m.Daily {
			bar := strings.Repeat("#", int(day.ScheduledHours+0.5))
			marker := ""
			if day.IsOverloaded {
				marker = "  OVER"
			}
			fmt.Printf("  %-4s %5.1fh  %s%s\n", day.DayName[:3], day.ScheduledHours, bar, marker)
		}

		if len(m.Channels) > 0 {
			fmt.Println("\nChannels:")
			for _, ch := range m.Channels {
				fmt.Printf("  %-20s %5.1fh  (%d tasks, %.0f%% done)\n",
					ch.ChannelName, ch.ScheduledHours, ch.TaskCount, ch.CompletionRate)
			}
		}

		if len(report.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for _, w := range report.Warnings {
				fmt.Printf("  [%-6s] %s\n", w.Severity, w.Message)
				if w.SuggestedAction != "" {
					fmt.Printf("           %s\n", w.SuggestedAction)
				}
			}
		}

		fmt.Printf("\nTrend: %s\n", report.Trend.Description)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(analyzeCmd)
}

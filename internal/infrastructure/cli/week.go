package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Manage the weekly schedule as a whole",
}

var weekRollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Start a new week, carrying over unfinished tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		week, err := services.Schedule.RollWeek()
		if err != nil {
			return MapError(fmt.Errorf("failed to roll week: %w", err))
		}

		fmt.Printf("Rolled into the week of %s with %d carried-over tasks.\n",
			week.StartDate.Format("2006-01-02"), len(week.Tasks))
		return nil
	},
}

var weekLapseCmd = &cobra.Command{
	Use:   "lapse",
	Short: "Mark tasks whose scheduled end has passed as overdue",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		lapsed, err := services.Schedule.MarkOverdue(time.Now())
		if err != nil {
			return MapError(fmt.Errorf("failed to sweep overdue tasks: %w", err))
		}

		if len(lapsed) == 0 {
			fmt.Println("Nothing overdue.")
			return nil
		}
		fmt.Printf("Marked %d tasks overdue:\n", len(lapsed))
		for _, id := range lapsed {
			fmt.Printf("  - %s\n", id)
		}
		return nil
	},
}

func init() {
	weekCmd.AddCommand(weekRollCmd)
	weekCmd.AddCommand(weekLapseCmd)
	RootCmd.AddCommand(weekCmd)
}

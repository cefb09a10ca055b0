package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var conflictsJSON bool

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "List overlapping tasks in the current week",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		conflicts, err := services.Planner.Conflicts()
		if err != nil {
			return MapError(fmt.Errorf("failed to detect conflicts: %w", err))
		}

		if conflictsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(conflicts)
		}

		if len(conflicts) == 0 {
			fmt.Println("No overlapping tasks.")
			return nil
		}

		fmt.Printf("Found %d conflicts:\n", len(conflicts))
		for _, c := range conflicts {
			fmt.Printf("  %s (%s) overlaps %s (%s) by %dmin\n",
				c.Task1.Title, c.Task1.ScheduledStart.Format("Mon 15:04"),
				c.Task2.Title, c.Task2.ScheduledStart.Format("Mon 15:04"),
				c.OverlapMinutes)
		}
		fmt.Println("\nRun 'cadence task move <id> --to <time>' or 'cadence alternatives <id>' to resolve.")
		return nil
	},
}

func init() {
	conflictsCmd.Flags().BoolVar(&conflictsJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(conflictsCmd)
}

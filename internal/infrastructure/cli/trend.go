package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compare this week's utilization against last week",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		trend, err := services.Planner.Trend()
		if err != nil {
			return MapError(fmt.Errorf("failed to compute trend: %w", err))
		}

		fmt.Printf("Trend: %s (%s)\n", trend.Description, trend.Direction)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(trendCmd)
}

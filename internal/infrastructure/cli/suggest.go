package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/cadence/pkg/domain/rebalance"
	"github.com/spf13/cobra"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate rebalancing suggestions for an overloaded week",
	Long: `Suggest inspects the current week and proposes ways to bring it back
under capacity: moving tasks to lighter days, trimming estimates, or
pushing work into next week. A balanced week yields no suggestions.

Apply one with 'cadence suggest apply <id>'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		suggestions, err := services.Planner.Suggest()
		if err != nil {
			return MapError(fmt.Errorf("failed to generate suggestions: %w", err))
		}

		if suggestJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(suggestions)
		}

		if len(suggestions) == 0 {
			fmt.Println("The week is balanced. Nothing to suggest.")
			return nil
		}

		fmt.Printf("%d suggestions:\n", len(suggestions))
		for _, s := range suggestions {
			fmt.Printf("\n[%s] %s (%s)\n", s.Priority, s.Title, s.ID)
			fmt.Printf("  %s\n", s.Description)
			fmt.Printf("  Impact: %.1fh relieved, utilization %.1f points lower, effort %s\n",
				s.Impact.HoursReduced, s.Impact.UtilizationImprovement, s.Effort)
			for _, a := range s.Actions {
				printAction(a)
			}
		}
		fmt.Println("\nApply with: cadence suggest apply <id>")
		return nil
	},
}

func printAction(a rebalance.Action) {
	switch {
	case a.Kind == rebalance.ActionMoveTask && a.Proposed != nil:
		fmt.Printf("  - move %q from %s to %s\n",
			a.TaskTitle, a.Current.Start.Format("Mon 15:04"), a.Proposed.Start.Format("Mon 15:04"))
	case a.Kind == rebalance.ActionReduceHours && a.Proposed != nil:
		fmt.Printf("  - trim %q from %.1fh to %.1fh\n", a.TaskTitle, a.Current.Hours, a.Proposed.Hours)
	case a.Kind == rebalance.ActionReschedule && a.Proposed != nil:
		fmt.Printf("  - push %q to %s\n", a.TaskTitle, a.Proposed.End.Format("Mon 2006-01-02"))
	default:
		fmt.Printf("  - %s: %s\n", a.TaskTitle, a.Reason)
	}
}

var suggestApplyCmd = &cobra.Command{
	Use:   "apply <suggestion-id>",
	Short: "Apply a suggestion to the schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		result, err := services.Planner.ApplySuggestion(args[0])
		if err != nil {
			return MapError(fmt.Errorf("failed to apply suggestion: %w", err))
		}

		fmt.Println(result.Summary)
		if result.Applied < result.Total {
			fmt.Printf("%d actions were stale or advisory and left untouched.\n", result.Total-result.Applied)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Output in JSON format")
	suggestCmd.AddCommand(suggestApplyCmd)
	RootCmd.AddCommand(suggestCmd)
}

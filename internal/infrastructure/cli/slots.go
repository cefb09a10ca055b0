package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Flag variables for slots
var (
	slotsDuration float64
	slotsFrom     string
	slotsTo       string
	slotsJSON     bool
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Find free time slots within working hours",
	Long: `Slots lists free blocks long enough for a task of the given duration,
scanning working hours between --from and --to. Defaults to the next
seven days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		from := time.Now()
		if slotsFrom != "" {
			from, err = time.ParseInLocation("2006-01-02", slotsFrom, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --from date %q (expected YYYY-MM-DD)", slotsFrom)
			}
		}
		to := from.AddDate(0, 0, 7)
		if slotsTo != "" {
			to, err = time.ParseInLocation("2006-01-02", slotsTo, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --to date %q (expected YYYY-MM-DD)", slotsTo)
			}
		}

		slots, err := services.Planner.FreeSlots(slotsDuration, from, to)
		if err != nil {
			return MapError(fmt.Errorf("failed to find slots: %w", err))
		}

		if slotsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(slots)
		}

		if len(slots) == 0 {
			fmt.Printf("No free %.1fh slots between %s and %s.\n",
				slotsDuration, from.Format("2006-01-02"), to.Format("2006-01-02"))
			return nil
		}

		fmt.Printf("Free %.1fh slots:\n", slotsDuration)
		for _, s := range slots {
			fmt.Printf("  %s  (%.1fh available)\n",
				s.Start.Format("Mon 2006-01-02 15:04"), s.Duration().Hours())
		}
		return nil
	},
}

var alternativesJSON bool

var alternativesCmd = &cobra.Command{
	Use:   "alternatives <task-id>",
	Short: "Suggest alternative slots for a scheduled task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		suggestions, err := services.Planner.Alternatives(args[0])
		if err != nil {
			return MapError(fmt.Errorf("failed to find alternatives: %w", err))
		}

		if alternativesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(suggestions)
		}

		if len(suggestions) == 0 {
			fmt.Println("No alternative slots found within the window.")
			return nil
		}

		fmt.Printf("Alternative slots for %s:\n", args[0])
		for _, s := range suggestions {
			fmt.Printf("  %s  %s\n", s.Slot.Start.Format("Mon 2006-01-02 15:04"), s.Label)
		}
		return nil
	},
}

func init() {
	slotsCmd.Flags().Float64VarP(&slotsDuration, "duration", "d", 1,
		"Required slot length in hours")
	slotsCmd.Flags().StringVar(&slotsFrom, "from", "", "First day to scan (YYYY-MM-DD, default today)")
	slotsCmd.Flags().StringVar(&slotsTo, "to", "", "Last day to scan (YYYY-MM-DD, default from+7d)")
	slotsCmd.Flags().BoolVar(&slotsJSON, "json", false, "Output in JSON format")

	alternativesCmd.Flags().BoolVar(&alternativesJSON, "json", false, "Output in JSON format")

	RootCmd.AddCommand(slotsCmd)
	RootCmd.AddCommand(alternativesCmd)
}

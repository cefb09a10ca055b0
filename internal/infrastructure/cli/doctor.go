package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/cadence/pkg/storage"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the cadence workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Running Cadence Doctor...")

		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		workspace := wiring.NewWorkspace(root)
		repo := workspace.Repo

		hasIssues := false
		check := func(name string, fn func() error) {
			fmt.Printf("Checking %s... ", name)
			if err := fn(); err != nil {
				fmt.Printf("FAIL\n  Error: %v\n", err)
				hasIssues = true
			} else {
				fmt.Printf("PASS\n")
			}
		}

		check("Initialization", func() error {
			if !repo.IsInitialized() {
				return fmt.Errorf(".cadence directory not found (run 'cadence init')")
			}
			return nil
		})

		check("Settings", func() error {
			settings, err := repo.LoadSettings()
			if err != nil {
				return err
			}
			if settings.WeeklyCapacityHours <= 0 {
				return fmt.Errorf("weekly capacity is %.1f, must be positive", settings.WeeklyCapacityHours)
			}
			if len(settings.WorkingDays) == 0 {
				return fmt.Errorf("no working days configured")
			}
			return nil
		})

		check("Channel Roster", func() error {
			channels, err := repo.LoadChannels()
			if err != nil {
				return err
			}
			for i := range channels {
				if err := channels[i].Validate(); err != nil {
					return err
				}
			}
			return nil
		})

		check("Template List", func() error {
			templates, err := repo.LoadTemplates()
			if err != nil {
				return err
			}
			for i := range templates {
				if err := templates[i].Validate(); err != nil {
					return err
				}
			}
			return nil
		})

		check("Schedule", func() error {
			week, err := repo.LoadWeek()
			if err != nil {
				return err
			}
			for i := range week.Tasks {
				if err := week.Tasks[i].Validate(); err != nil {
					return err
				}
			}
			return nil
		})

		check("Channel References", func() error {
			week, err := repo.LoadWeek()
			if err != nil {
				return err
			}
			channels, err := repo.LoadChannels()
			if err != nil {
				return err
			}
			known := make(map[string]bool, len(channels))
			for _, c := range channels {
				known[c.ID] = true
			}
			ghosts := 0
			for _, t := range week.Tasks {
				if !known[t.ChannelID] {
					ghosts++
				}
			}
			if ghosts > 0 {
				return fmt.Errorf("%d tasks reference channels missing from channels.yaml", ghosts)
			}
			return nil
		})

		check("Audit Trail", func() error {
			path, err := repo.ResolvePath(storage.EventsFile)
			if err != nil {
				return err
			}
			inspector := storage.NewWorkspaceInspector()
			exists, err := inspector.FileExists(path)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("events.jsonl not found")
			}
			return nil
		})

		check("Audit Integrity", func() error {
			violations, err := workspace.Audit.VerifyIntegrity()
			if err != nil {
				return err
			}
			if len(violations) > 0 {
				return fmt.Errorf("%d integrity violations found (run 'cadence audit verify')", len(violations))
			}
			velocity, err := workspace.Audit.GetCompletionVelocity()
			if err == nil && velocity > 0 {
				fmt.Printf("(Velocity: %.1f tasks/day) ", velocity)
			}
			return nil
		})

		if hasIssues {
			fmt.Println("\nissues found! Please fix them before continuing.")
			return fmt.Errorf("doctor found issues")
		}
		fmt.Println("\nEverything looks good!")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

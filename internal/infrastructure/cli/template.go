package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage reusable task templates",
}

var (
	templateType      string
	templateEstimate  float64
	templateChecklist []string
)

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a template for recurring content work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		contentType, err := schedule.ParseContentType(templateType)
		if err != nil {
			return err
		}

		template, err := services.Template.AddTemplate(args[0], contentType, templateEstimate, templateChecklist)
		if err != nil {
			return MapError(fmt.Errorf("failed to add template: %w", err))
		}

		fmt.Printf("Added template %s (%.1fh %s, %s)\n",
			template.Name, template.EstimatedHours, template.ContentType, template.ID)
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		templates, err := services.Template.ListTemplates()
		if err != nil {
			return MapError(err)
		}

		if len(templates) == 0 {
			fmt.Println("No templates yet. Run 'cadence template add <name>'.")
			return nil
		}

		fmt.Printf("%-10s %-24s %-12s %-8s %s\n", "ID", "NAME", "TYPE", "HOURS", "CHECKLIST")
		for _, t := range templates {
			fmt.Printf("%-10s %-24s %-12s %-8.1f %d items\n",
				t.ID, t.Name, t.ContentType, t.EstimatedHours, len(t.Checklist))
		}
		return nil
	},
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove <id|name>",
	Short: "Remove a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := services.Template.RemoveTemplate(args[0]); err != nil {
			return MapError(fmt.Errorf("failed to remove template: %w", err))
		}
		fmt.Printf("Template %s removed. Tasks created from it are unaffected.\n", args[0])
		return nil
	},
}

func init() {
	templateAddCmd.Flags().StringVarP(&templateType, "type", "t", "video",
		"Content type (video, short, livestream, post, podcast, newsletter)")
	templateAddCmd.Flags().Float64VarP(&templateEstimate, "estimate", "e", 0,
		"Estimated hours for a task created from this template")
	templateAddCmd.Flags().StringSliceVar(&templateChecklist, "checklist", nil,
		"Checklist items, e.g. --checklist script,record,edit")
	_ = templateAddCmd.MarkFlagRequired("estimate")

	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateRemoveCmd)
	RootCmd.AddCommand(templateCmd)
}

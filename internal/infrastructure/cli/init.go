package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/pkg/application"
	"github.com/felixgeelhaar/cadence/pkg/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new cadence workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		repo := storage.NewFilesystemRepository(root)
		audit := application.NewAuditService(repo)
		service := application.NewInitService(repo, audit)

		if err := service.InitializeWorkspace(); err != nil {
			return MapError(fmt.Errorf("failed to initialize workspace: %w", err))
		}

		fmt.Printf("Initialized cadence workspace in %s\n", root)
		fmt.Println("Next: add a channel with 'cadence channel add <name>'")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}

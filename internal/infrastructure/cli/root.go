package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// workspacePath holds the --workspace flag. Empty means the current
// working directory.
var workspacePath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "cadence",
	Version: Version,
	Short:   "A weekly capacity planner for content creators",
	Long: `Cadence is a weekly capacity planner for content creators.
It helps one person answer:
1. How much work is on my plate this week?
2. Where does it collide?
3. What should move to make the week fit?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "C", "",
		"Path to the workspace directory (defaults to the current directory)")
}

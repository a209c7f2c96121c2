// Package cli implements the harborview CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harborview-io/harborview/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "harborview",
	Short: "Terminal client for your deployment server",
	Long: `Harborview is a terminal client for a Dokploy-compatible deployment
server. It lists your projects and services and streams container logs live.

Running harborview without a subcommand opens the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		core := buildCore()
		return tui.Run(core.Sessions, core.Client, core.Endpoints)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(whoamiCmd)
}

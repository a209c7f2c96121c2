package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored access token",
	Long: `Clear the stored access token and cached profile.

The server address is kept so the next login pre-fills it.`,
	Run: func(cmd *cobra.Command, args []string) {
		core := buildCore()
		core.Sessions.Logout()
		fmt.Println(styleSuccess.Render("Logged out."))
	},
}

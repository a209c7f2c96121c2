package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborview-io/harborview/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated account",
	RunE: func(cmd *cobra.Command, args []string) error {
		core := buildCore()
		core.Sessions.Initialize(cmd.Context())
		if core.Sessions.State().Status != session.StatusAuthenticated {
			return fmt.Errorf("not logged in, run %s first", styleValue.Render("harborview login"))
		}

		profile, reqErr := core.Client.GetProfile(cmd.Context())
		if reqErr != nil {
			return fmt.Errorf("fetch profile: %s", reqErr.Message)
		}

		fmt.Printf("%s %s\n", styleLabel.Render("Account:"), styleValue.Render(profile.DisplayName()))
		if profile.Email != "" && profile.Email != profile.DisplayName() {
			fmt.Printf("%s %s\n", styleLabel.Render("Email:"), profile.Email)
		}
		fmt.Printf("%s %s\n", styleLabel.Render("Server:"), core.Endpoints.Get())
		return nil
	},
}

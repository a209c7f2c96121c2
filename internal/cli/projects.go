package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborview-io/harborview/internal/session"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"ls"},
	Short:   "List projects on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		core := buildCore()
		core.Sessions.Initialize(cmd.Context())
		if core.Sessions.State().Status != session.StatusAuthenticated {
			return fmt.Errorf("not logged in, run %s first", styleValue.Render("harborview login"))
		}

		projects, reqErr := core.Client.ListProjects(cmd.Context())
		if reqErr != nil {
			return fmt.Errorf("list projects: %s", reqErr.Message)
		}
		if len(projects) == 0 {
			fmt.Println(styleHint.Render("No projects on this server yet."))
			return nil
		}

		for _, p := range projects {
			line := styleValue.Render(p.Name)
			if p.Description != "" {
				line += "  " + styleLabel.Render(p.Description)
			}
			fmt.Printf("%s  %s\n", line, styleHint.Render(p.ID))
		}
		return nil
	},
}

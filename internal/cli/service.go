package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborview-io/harborview/internal/models"
	"github.com/harborview-io/harborview/internal/session"
)

var serviceCmd = &cobra.Command{
	Use:   "service <type> <id>",
	Short: "Show a service and its deployments",
	Long: `Show the detail record of a service, including its recent deployments.

Type is one of: application, compose, mariadb, mongo, mysql, postgres, redis.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceType, err := models.ParseServiceType(args[0])
		if err != nil {
			return err
		}

		core := buildCore()
		core.Sessions.Initialize(cmd.Context())
		if core.Sessions.State().Status != session.StatusAuthenticated {
			return fmt.Errorf("not logged in, run %s first", styleValue.Render("harborview login"))
		}

		svc, reqErr := core.Client.GetService(cmd.Context(), serviceType, args[1])
		if reqErr != nil {
			return fmt.Errorf("fetch service: %s", reqErr.Message)
		}

		fmt.Printf("%s %s\n", styleBrand.Render(svc.Name), styleLabel.Render(string(serviceType)))
		if svc.AppName != "" {
			fmt.Printf("  %s %s\n", styleLabel.Render("app name:"), svc.AppName)
		}
		if svc.Status != "" {
			fmt.Printf("  %s %s\n", styleLabel.Render("status:"), svc.Status)
		}
		if svc.Description != "" {
			fmt.Printf("  %s %s\n", styleLabel.Render("description:"), svc.Description)
		}

		if len(svc.Deployments) > 0 {
			fmt.Println()
			fmt.Println(styleLabel.Render("Deployments:"))
			for _, d := range svc.Deployments {
				status := d.Status
				if status == "" {
					status = "unknown"
				}
				fmt.Printf("  %s  %s  %s\n",
					styleValue.Render(d.DisplayTitle()),
					styleHint.Render(status),
					styleHint.Render(d.CreatedAt))
			}
		}
		return nil
	},
}

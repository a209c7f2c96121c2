package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harborview-io/harborview/internal/store"
)

var loginServerFlag string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a personal access token",
	Long: `Authenticate against a deployment server using a personal access token.

The token and server address are validated with a read-only probe call
before anything is stored. On success both are persisted together and
subsequent commands run authenticated.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServerFlag, "server", "", "server URL (e.g. cloud.example.com)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	core := buildCore()

	endpoint := loginServerFlag
	if endpoint == "" {
		stored := core.Endpoints.Get()
		prompt := "Server URL: "
		if stored != "" {
			prompt = fmt.Sprintf("Server URL [%s]: ", stored)
		}
		fmt.Print(prompt)
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		endpoint = strings.TrimSpace(input)
		if endpoint == "" {
			endpoint = stored
		}
	}

	fmt.Print("Personal access token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	if err := core.Sessions.AuthenticateWithPAT(cmd.Context(), string(tokenBytes), endpoint); err != nil {
		return fmt.Errorf("login failed: %s", err)
	}

	fmt.Println(styleSuccess.Render("Logged in to " + store.Normalize(endpoint)))
	return nil
}

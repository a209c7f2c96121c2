package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/harborview-io/harborview/internal/logstream"
	"github.com/harborview-io/harborview/internal/models"
	"github.com/harborview-io/harborview/internal/session"
)

var (
	logsTailFlag    int
	logsSinceFlag   string
	logsSearchFlag  string
	logsRunTypeFlag string
)

var logsCmd = &cobra.Command{
	Use:   "logs <type> <id>",
	Short: "Stream live container logs for a service",
	Long: `Stream live container logs for a service to stdout.

The service's container is resolved through the server, then a websocket
log stream is opened against it. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(2),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVar(&logsTailFlag, "tail", logstream.DefaultTail, "number of trailing lines to request")
	logsCmd.Flags().StringVar(&logsSinceFlag, "since", logstream.DefaultSince, "time window to stream from")
	logsCmd.Flags().StringVar(&logsSearchFlag, "search", "", "free-text filter applied by the server")
	logsCmd.Flags().StringVar(&logsRunTypeFlag, "run-type", logstream.DefaultRunType, "run type of the target container")
}

func runLogs(cmd *cobra.Command, args []string) error {
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
	appName := svc.ResolvedAppName()
	if appName == "" {
		return fmt.Errorf("application name is unavailable for this service")
	}

	containers, reqErr := core.Client.FindContainers(cmd.Context(), appName)
	if reqErr != nil {
		return fmt.Errorf("resolve containers: %s", reqErr.Message)
	}
	containerID := models.FirstContainerID(containers)

	params := logstream.Params{
		Tail:    logsTailFlag,
		Since:   logsSinceFlag,
		Search:  logsSearchFlag,
		RunType: logsRunTypeFlag,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	done := make(chan error, 1)
	stream := logstream.New(core.Endpoints.Get(), logstream.Events{
		OnState: func(state logstream.ConnState, errMsg string) {
			switch state {
			case logstream.StateConnected:
				fmt.Fprintln(os.Stderr, styleHint.Render("Connected."))
			case logstream.StateDisconnected:
				done <- nil
			case logstream.StateError:
				done <- fmt.Errorf("log stream: %s", errMsg)
			}
		},
		OnLines: func(lines []string) {
			for _, line := range lines {
				fmt.Println(line)
			}
		},
	})

	stream.Connect(containerID, core.Sessions.Token(), params)
	defer stream.Disconnect()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	select {
	case err := <-done:
		return err
	case <-interrupt:
		return nil
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Long: `Check that the backend is reachable.

Calls the backend's /health route. Exits non-zero when the server is
unreachable or answers with an error status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ep := getEndpoint()

		start := time.Now()
		err := newClient().Health(commandContext(cmd))
		elapsed := time.Since(start)
		if err != nil {
			if reportErr := handleBackendError(err); reportErr != nil {
				return reportErr
			}
			return failReported(cmd)
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"reachable":  true,
				"api_url":    ep.APIURL,
				"latency_ms": elapsed.Milliseconds(),
			}, withPending(nil), responseMeta(0, elapsed))
			return nil
		}

		fmt.Println(ui.Successf("%s is reachable %s", linkURL(ep.APIURL), ui.Hint(fmt.Sprintf("(%d ms)", elapsed.Milliseconds()))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

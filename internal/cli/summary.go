package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/inventory"
	"github.com/hobbyparts/hpt/internal/ui"
)

var (
	summaryWithItems bool
	summaryMarkdown  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals, unstored items and the location overview",
	Long: `Show totals, unstored items and the location overview.

Fetches items, containers, locations, item placements and projects from the
backend, then prints:
  - total projects, items, weight and value
  - the items not stored in any container
  - every location with its containers and their item count, weight and value

Containers without a known location are left out of the overview.

Examples:
  hpt summary
  hpt summary --items
  hpt summary --markdown
  hpt summary --json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	snap, elapsed, err := fetchSnapshot(cmd, api.SnapshotOptions{Projects: true})
	if err != nil {
		return handleBackendError(err)
	}

	summary := inventory.Build(collectionsOf(snap))
	if !includeImages {
		stripSummaryImages(&summary)
	}
	warnings := integrityWarnings(snap)

	if isJSONOutput() {
		outputSuccessWithWarnings(summary, withPending(warnings), responseMeta(summary.ItemStats.Total, elapsed))
		return nil
	}

	if summaryMarkdown {
		rendered, err := ui.RenderMarkdown(summaryReport(summary, summaryWithItems), ui.NewDisplayContext().MarkdownWidth())
		if err != nil {
			return handleError(ErrInternal, fmt.Errorf("render summary: %w", err), "Retry without --markdown")
		}
		fmt.Print(rendered)
	} else {
		fmt.Print(renderSummary(summary, summaryWithItems))
	}
	printWarnings(warnings)
	return nil
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryWithItems, "items", false, "List the items in each container and the unstored items")
	summaryCmd.Flags().BoolVar(&summaryMarkdown, "markdown", false, "Render the report as formatted markdown")
	summaryCmd.Flags().BoolVar(&includeImages, "images", false, "Include base64 image data in JSON output")
	rootCmd.AddCommand(summaryCmd)
}

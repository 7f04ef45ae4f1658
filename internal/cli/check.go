package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/inventory"
	"github.com/hobbyparts/hpt/internal/ui"
)

var (
	checkStrict bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report placement data the views cannot show cleanly",
	Long: `Report placement data the views cannot show cleanly.

The backend does not enforce one placement per item, nor that placements
and containers point at records that exist. Every view tolerates this (the
first placement row wins, missing names show as "Unknown", containers
without a location are left out of the overview); check lists each case:

  duplicate_link       an item has more than one placement row
  missing_item         a placement row names an item that does not exist
  missing_container    a placement row names a container that does not exist
  duplicate_container  two container rows share an id; the first is used
  orphan_container     a container has no location, or an unknown one

With --strict, any issue makes the command exit non-zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, elapsed, err := fetchSnapshot(cmd, api.SnapshotOptions{})
		if err != nil {
			return handleBackendError(err)
		}

		issues := inventory.CheckLinks(snap.Items, snap.Links, snap.Containers, snap.Locations)
		if issues == nil {
			issues = []inventory.Issue{}
		}
		counts := make(map[inventory.IssueType]int)
		for _, issue := range issues {
			counts[issue.Type]++
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"issues": issues,
				"counts": counts,
			}, withPending(nil), responseMeta(len(issues), elapsed))
		} else {
			fmt.Printf("%s %s\n", ui.Header("Placement check"), ui.Hint(ui.IssueCounts(len(issues))))
			for _, issue := range issues {
				fmt.Printf("  %s %s\n", ui.Warning(string(issue.Type)+":"), issue.Message)
			}
			if len(issues) == 0 {
				fmt.Println(ui.Successf("No issues in %s, %s and %s.",
					ui.Plural(len(snap.Items), "item", "items"),
					ui.Plural(len(snap.Links), "placement", "placements"),
					ui.Plural(len(snap.Containers), "container", "containers")))
			}
		}

		if checkStrict && len(issues) > 0 {
			if isJSONOutput() {
				return failReported(cmd)
			}
			cmd.SilenceUsage = true
			return fmt.Errorf("%d placement issue(s) found", len(issues))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero when any issue is found")
	rootCmd.AddCommand(checkCmd)
}

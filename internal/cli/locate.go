package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/inventory"
	"github.com/hobbyparts/hpt/internal/ui"
)

var locateCmd = &cobra.Command{
	Use:   "locate <query>",
	Short: "Find where an item is stored",
	Long: `Find where an item is stored.

Matches every item whose name contains the query, ignoring case, and shows
its container and location. Queries need at least 2 characters.

Examples:
  hpt locate servo
  hpt locate "m3 screw" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if utf8.RuneCountInString(query) < inventory.MinQueryLength {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("query must be at least %d characters", inventory.MinQueryLength), "")
		}

		snap, elapsed, err := fetchSnapshot(cmd, api.SnapshotOptions{})
		if err != nil {
			return handleBackendError(err)
		}

		matches := inventory.Locate(snap.Items, snap.Links, snap.Containers, snap.Locations, query)
		if matches == nil {
			matches = []inventory.Placement{}
		}

		var warnings []Warning
		if len(matches) == 0 {
			warnings = append(warnings, Warning{
				Code:    WarnNoMatches,
				Message: fmt.Sprintf("no item name contains %q", query),
				Ref:     query,
			})
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"query":   query,
				"matches": matches,
			}, withPending(warnings), responseMeta(len(matches), elapsed))
			return nil
		}

		if len(matches) == 0 {
			fmt.Printf("No items match %q.\n", query)
			return nil
		}

		fmt.Printf("%s %s\n", ui.Header("Locate "+query), ui.Hint(ui.Count(len(matches), "match", "matches")))
		tbl := ui.NewResultsTable(ui.NewDisplayContext(), ui.LocateLayout)
		for i, m := range matches {
			where := looseLabel
			if m.Placed {
				where = m.LocationName + " / " + m.ContainerName
			}
			tbl.AddRow(i+1, m.ItemName, where)
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

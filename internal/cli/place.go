package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/model"
	"github.com/hobbyparts/hpt/internal/resolve"
	"github.com/hobbyparts/hpt/internal/ui"
)

var placeNone bool

type placeResult struct {
	Item      resolve.Candidate    `json:"item"`
	Container *resolve.Candidate   `json:"container"`
	Result    *api.PlacementResult `json:"result"`
}

var placeCmd = &cobra.Command{
	Use:   "place <item> <container>",
	Short: "Move an item into a container, or mark it unstored",
	Long: `Move an item into a container, or mark it unstored with --none.

Items and containers can be referenced by ID ("12" or "#12"), by name, or by
slug. Every existing placement row for the item is removed before the new
one is added. If adding fails after the removal, the item is left unstored
and the command reports it.

Examples:
  hpt place servo "Bin A"
  hpt place 12 #4
  hpt place servo --none`,
	Args: func(cmd *cobra.Command, args []string) error {
		if placeNone {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := fetchSnapshot(cmd, api.SnapshotOptions{})
		if err != nil {
			return handleBackendError(err)
		}

		item, err := resolve.ForItems(snap.Items).Resolve(args[0])
		if err != nil {
			return handleResolveError(err, "Run 'hpt items' to see item names and IDs")
		}

		var container *resolve.Candidate
		var containerID *model.ID
		if !placeNone {
			c, err := resolve.ForContainers(snap.Containers).Resolve(args[1])
			if err != nil {
				return handleResolveError(err, "Run 'hpt summary' to see containers")
			}
			container = &c
			containerID = &c.ID
		}

		logger.Debug().Int64("item", item.ID).Interface("container", containerID).Msg("setting placement")
		result, err := newClient().SetItemPlacement(commandContext(cmd), item.ID, containerID)
		out := placeResult{Item: item, Container: container, Result: result}
		if err != nil {
			if containerID != nil && result != nil && len(result.Deleted) > 0 {
				return handleErrorWithDetails(ErrPlacementIncomplete, err,
					fmt.Sprintf("Run 'hpt place %d %d' again to store it", item.ID, *containerID), out)
			}
			return handleBackendError(err)
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(out, withPending(nil), responseMeta(0, 0))
			return nil
		}

		if container == nil {
			if len(result.Deleted) == 0 {
				fmt.Println(ui.Infof("%s %s was already unstored", item.Name, ui.ID(item.ID)))
				return nil
			}
			fmt.Println(ui.Successf("%s %s is now unstored", item.Name, ui.ID(item.ID)))
			return nil
		}
		fmt.Println(ui.Successf("Placed %s %s in %s %s", item.Name, ui.ID(item.ID), ui.Name(container.Name), ui.ID(container.ID)))
		if n := len(result.Deleted); n > 1 {
			fmt.Println(ui.Hint(fmt.Sprintf("  removed %d old placement rows", n)))
		}
		return nil
	},
}

func init() {
	placeCmd.Flags().BoolVar(&placeNone, "none", false, "Remove the item from its container")
	rootCmd.AddCommand(placeCmd)
}

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/inventory"
	"github.com/hobbyparts/hpt/internal/model"
	"github.com/hobbyparts/hpt/internal/resolve"
	"github.com/hobbyparts/hpt/internal/ui"
)

// itemSort is the --sort flag value.
type itemSort string

const (
	sortByBackend itemSort = ""
	sortByName    itemSort = "name"
	sortByID      itemSort = "id"
)

var _ pflag.Value = (*itemSort)(nil)

func (s *itemSort) String() string { return string(*s) }

func (s *itemSort) Set(v string) error {
	switch itemSort(strings.ToLower(strings.TrimSpace(v))) {
	case sortByName:
		*s = sortByName
	case sortByID:
		*s = sortByID
	default:
		return fmt.Errorf("must be one of: name, id")
	}
	return nil
}

func (s *itemSort) Type() string { return "name|id" }

var (
	itemsLoose     bool
	itemsContainer string
	itemsSort      itemSort
	itemsDescribe  bool
)

// sortItems orders items in place. Names compare with case-insensitive
// Unicode collation and ties fall back to ID.
func sortItems(items []model.EnrichedItem, by itemSort) {
	switch by {
	case sortByName:
		col := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			if c := col.CompareString(items[i].ItemName, items[j].ItemName); c != 0 {
				return c < 0
			}
			return items[i].ItemID < items[j].ItemID
		})
	case sortByID:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ItemID < items[j].ItemID
		})
	}
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List items with their current container and location",
	Long: `List items with their current container and location.

Items keep the backend's order unless --sort is given. An item whose
container no longer exists is shown in the "Unknown" container.

Containers can be referenced by ID ("12" or "#12"), by name, or by slug
("bin-a").

Examples:
  hpt items
  hpt items --loose
  hpt items --container "Bin A" --sort name
  hpt items --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItems(cmd, itemsLoose)
	},
}

var looseCmd = &cobra.Command{
	Use:   "loose",
	Short: "List items that are not stored in any container",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItems(cmd, true)
	},
}

func runItems(cmd *cobra.Command, onlyLoose bool) error {
	if onlyLoose && strings.TrimSpace(itemsContainer) != "" {
		return handleErrorMsg(ErrInvalidInput, "--loose and --container cannot be combined", "")
	}

	snap, elapsed, err := fetchSnapshot(cmd, api.SnapshotOptions{})
	if err != nil {
		return handleBackendError(err)
	}

	items := inventory.EnrichWithLocations(snap.Items, snap.Links, snap.Containers, snap.Locations)
	title := "Items"

	switch {
	case onlyLoose:
		items = inventory.Loose(items)
		title = "Unstored items"
	case strings.TrimSpace(itemsContainer) != "":
		match, err := resolve.ForContainers(snap.Containers).Resolve(itemsContainer)
		if err != nil {
			return handleResolveError(err, "Run 'hpt summary' to see containers")
		}
		items = inventory.InContainer(items, match.ID)
		title = "Items in " + match.Name
	}

	sortItems(items, itemsSort)
	if !includeImages {
		stripItemImages(items)
	}
	warnings := integrityWarnings(snap)

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{
			"items": items,
			"stats": inventory.Stats(items),
		}, withPending(warnings), responseMeta(len(items), elapsed))
		return nil
	}

	stats := inventory.Stats(items)
	fmt.Printf("%s %s\n", ui.Header(title), ui.Hint(statsLine(stats.Total, stats.Weight, stats.Value)))
	if len(items) == 0 {
		if onlyLoose {
			fmt.Println("All items are assigned to containers.")
		} else {
			fmt.Println("No items.")
		}
		printWarnings(warnings)
		return nil
	}

	fmt.Println(renderItems(items))
	if itemsDescribe {
		printDescriptions(items)
	}
	printWarnings(warnings)
	return nil
}

// printDescriptions lists item descriptions as plain text, numbered like the table.
func printDescriptions(items []model.EnrichedItem) {
	printed := false
	for _, row := range model.NumberedList(items) {
		desc := ui.PlainText(row.Item.Description)
		if desc == "" {
			continue
		}
		if !printed {
			fmt.Println()
			fmt.Println(ui.Header("Descriptions"))
			printed = true
		}
		fmt.Printf("%s %s: %s\n", ui.Hint(ui.RowNum(row.GetNum(), model.NumWidth(len(items)))), row.GetContent(), desc)
	}
}

func init() {
	itemsCmd.Flags().BoolVar(&itemsLoose, "loose", false, "Only items that are not stored in any container")
	itemsCmd.Flags().StringVar(&itemsContainer, "container", "", "Only items in this container (ID, name or slug)")
	itemsCmd.Flags().Var(&itemsSort, "sort", "Sort by name or id (default: backend order)")
	itemsCmd.Flags().BoolVar(&itemsDescribe, "describe", false, "Also print item descriptions")
	itemsCmd.Flags().BoolVar(&includeImages, "images", false, "Include base64 image data in JSON output")

	looseCmd.Flags().Var(&itemsSort, "sort", "Sort by name or id (default: backend order)")
	looseCmd.Flags().BoolVar(&includeImages, "images", false, "Include base64 image data in JSON output")

	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(looseCmd)
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/inventory"
	"github.com/hobbyparts/hpt/internal/model"
	"github.com/hobbyparts/hpt/internal/ui"
)

// includeImages keeps base64 image payloads in JSON and export output.
var includeImages bool

// looseLabel is shown in the placement column for unassigned items.
const looseLabel = "(not stored)"

func collectionsOf(snap *api.Snapshot) inventory.Collections {
	return inventory.Collections{
		Items:      snap.Items,
		Links:      snap.Links,
		Containers: snap.Containers,
		Locations:  snap.Locations,
		Projects:   snap.Projects,
	}
}

// integrityWarnings turns link problems into a single envelope warning.
// The views still render; 'hpt check' lists the details.
func integrityWarnings(snap *api.Snapshot) []Warning {
	issues := inventory.CheckLinks(snap.Items, snap.Links, snap.Containers, snap.Locations)
	if len(issues) == 0 {
		return nil
	}
	return []Warning{{
		Code:    WarnDataIntegrity,
		Message: fmt.Sprintf("%d link integrity issue(s) found; run 'hpt check' for details", len(issues)),
	}}
}

// printWarnings writes warnings to stderr in text mode.
func printWarnings(warnings []Warning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, ui.Warning(w.Message))
	}
}

// withPending prepends the warnings collected during startup.
func withPending(warnings []Warning) []Warning {
	out := make([]Warning, 0, len(pendingWarnings)+len(warnings))
	out = append(out, pendingWarnings...)
	return append(out, warnings...)
}

func stripItemImages(items []model.EnrichedItem) {
	for i := range items {
		items[i].Image = nil
		items[i].ContainerImage = nil
	}
}

// stripSummaryImages drops image payloads in place.
func stripSummaryImages(s *model.Summary) {
	stripItemImages(s.LooseItems)
	for i := range s.LocationTree {
		for j := range s.LocationTree[i].Containers {
			c := &s.LocationTree[i].Containers[j]
			c.Image = nil
			stripItemImages(c.Items)
		}
	}
}

func placementLabel(e model.EnrichedItem) string {
	if loc := e.GetLocation(); loc != "" {
		return loc
	}
	return looseLabel
}

// renderItems renders a numbered item listing sized to the terminal.
func renderItems(items []model.EnrichedItem) string {
	tbl := ui.NewResultsTable(ui.NewDisplayContext(), ui.ItemsLayout)
	for _, row := range model.NumberedList(items) {
		tbl.AddRow(row.GetNum(),
			row.GetContent(),
			placementLabel(row.Item),
			ui.FormatOptionalGrams(row.Item.Weight),
			ui.FormatOptionalMoney(row.Item.Price),
		)
	}
	return tbl.Render()
}

func statsLine(n int, weight, value float64) string {
	return fmt.Sprintf("%s  %s  %s",
		ui.Count(n, "item", "items"),
		ui.FormatGrams(weight),
		ui.FormatMoney(value))
}

func itemRefs(items []model.EnrichedItem) []string {
	refs := make([]string, len(items))
	for i, it := range items {
		refs[i] = it.ItemName + " " + ui.ID(it.ItemID)
	}
	return refs
}

// renderSummary is the plain terminal layout of the overview.
func renderSummary(s model.Summary, withItems bool) string {
	var sb strings.Builder

	sb.WriteString(ui.Header("Inventory summary"))
	sb.WriteString("\n")
	totals := ui.NewTable(2).AlignRight(1)
	totals.Indent = "  "
	totals.AddRow("Total projects", fmt.Sprintf("%d", s.ProjectCount))
	totals.AddRow("Total items", fmt.Sprintf("%d", s.ItemStats.Total))
	totals.AddRow("Total weight", ui.FormatGrams(s.ItemStats.Weight))
	totals.AddRow("Total value", ui.FormatMoney(s.ItemStats.Value))
	sb.WriteString(totals.String())
	sb.WriteString("\n")

	sb.WriteString(ui.Header("Unstored items"))
	sb.WriteString("\n")
	if len(s.LooseItems) == 0 {
		sb.WriteString("  All items are assigned to containers.\n")
	} else {
		sb.WriteString("  " + statsLine(s.LooseStats.Total, s.LooseStats.Weight, s.LooseStats.Value) + "\n")
		if withItems {
			sb.WriteString(ui.Bullets("    ", "•", itemRefs(s.LooseItems)))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(ui.Header("Location overview"))
	sb.WriteString("\n")
	if len(s.LocationTree) == 0 {
		sb.WriteString("  No locations.\n")
	}
	for _, loc := range s.LocationTree {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", ui.Name(loc.LocationName), ui.Hint(statsLine(loc.ItemCount, loc.TotalWeight, loc.TotalValue))))
		if len(loc.Containers) == 0 {
			sb.WriteString("    " + ui.Hint("no containers") + "\n")
			continue
		}
		tbl := ui.NewTable(4).AlignRight(1, 2, 3)
		tbl.Indent = "    "
		for _, c := range loc.Containers {
			tbl.AddRow(
				"▪ "+c.ContainerName,
				ui.Count(c.ItemCount, "item", "items"),
				ui.FormatGrams(c.TotalWeight),
				ui.FormatMoney(c.TotalValue),
			)
		}
		for i, row := range tbl.Lines() {
			sb.WriteString(row + "\n")
			if withItems {
				sb.WriteString(ui.Bullets("        ", "-", itemRefs(loc.Containers[i].Items)))
			}
		}
	}

	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"|", `\|`,
)

// summaryReport renders the overview as markdown for glamour.
func summaryReport(s model.Summary, withItems bool) string {
	esc := markdownEscaper.Replace
	var sb strings.Builder

	sb.WriteString("# Inventory summary\n\n")
	sb.WriteString("| Total projects | Total items | Total weight | Total value |\n")
	sb.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&sb, "| %d | %d | %s | %s |\n\n",
		s.ProjectCount, s.ItemStats.Total, ui.FormatGrams(s.ItemStats.Weight), ui.FormatMoney(s.ItemStats.Value))

	sb.WriteString("## Unstored items\n\n")
	if len(s.LooseItems) == 0 {
		sb.WriteString("All items are assigned to containers.\n\n")
	} else {
		fmt.Fprintf(&sb, "- Count: **%d**\n- Total weight: **%s**\n- Total value: **%s**\n\n",
			s.LooseStats.Total, ui.FormatGrams(s.LooseStats.Weight), ui.FormatMoney(s.LooseStats.Value))
		if withItems {
			for _, it := range s.LooseItems {
				fmt.Fprintf(&sb, "- %s `#%d`\n", esc(it.ItemName), it.ItemID)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Location overview\n\n")
	for _, loc := range s.LocationTree {
		fmt.Fprintf(&sb, "### %s\n\n", esc(loc.LocationName))
		if len(loc.Containers) == 0 {
			sb.WriteString("_No containers._\n\n")
			continue
		}
		sb.WriteString("| Container | Items | Weight | Value |\n")
		sb.WriteString("|---|---:|---:|---:|\n")
		for _, c := range loc.Containers {
			fmt.Fprintf(&sb, "| %s | %d | %s | %s |\n",
				esc(c.ContainerName), c.ItemCount, ui.FormatGrams(c.TotalWeight), ui.FormatMoney(c.TotalValue))
		}
		sb.WriteString("\n")
		if !withItems {
			continue
		}
		for _, c := range loc.Containers {
			if len(c.Items) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "**%s**\n\n", esc(c.ContainerName))
			for _, it := range c.Items {
				fmt.Fprintf(&sb, "- %s `#%d`\n", esc(it.ItemName), it.ItemID)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

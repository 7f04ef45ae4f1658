package inventory

import "github.com/hobbyparts/hpt/internal/model"

// Stats rolls up count, weight and value over items. Missing weights and
// prices count as zero.
func Stats(items []model.EnrichedItem) model.ItemStats {
	stats := model.ItemStats{Total: len(items)}
	for _, it := range items {
		stats.Weight += it.WeightOrZero()
		stats.Value += it.PriceOrZero()
	}
	return stats
}

// Loose returns the items that have no link, in input order.
func Loose(items []model.EnrichedItem) []model.EnrichedItem {
	loose := make([]model.EnrichedItem, 0)
	for _, it := range items {
		if !it.Placed() {
			loose = append(loose, it)
		}
	}
	return loose
}

// InContainer returns the items linked to containerID, in input order.
func InContainer(items []model.EnrichedItem, containerID model.ID) []model.EnrichedItem {
	in := make([]model.EnrichedItem, 0)
	for _, it := range items {
		if it.InContainer(containerID) {
			in = append(in, it)
		}
	}
	return in
}

// SummarizeContainer builds the rollup for one container.
func SummarizeContainer(c model.Container, items []model.EnrichedItem) model.ContainerSummary {
	in := InContainer(items, c.ContainerID)
	stats := Stats(in)
	return model.ContainerSummary{
		Container:   c,
		Items:       in,
		ItemCount:   stats.Total,
		TotalWeight: stats.Weight,
		TotalValue:  stats.Value,
	}
}

// LocationTree groups containers under their locations.
//
// Locations keep the order of locations; containers keep the order of
// containers. Containers whose LocationID matches no location are left out.
// A repeated ContainerID or LocationID uses its first row only, so every
// placed item lands in at most one container.
func LocationTree(items []model.EnrichedItem, containers []model.Container, locations []model.Location) []model.LocationSummary {
	containers = firstContainers(containers)
	tree := make([]model.LocationSummary, 0, len(locations))
	seenLoc := make(map[model.ID]bool, len(locations))
	for _, loc := range locations {
		if seenLoc[loc.LocationID] {
			continue
		}
		seenLoc[loc.LocationID] = true

		ls := model.LocationSummary{
			Location:   loc,
			Containers: make([]model.ContainerSummary, 0),
		}
		for _, c := range containers {
			if !c.InLocation(loc.LocationID) {
				continue
			}
			cs := SummarizeContainer(c, items)
			ls.Containers = append(ls.Containers, cs)
			ls.ItemCount += cs.ItemCount
			ls.TotalWeight += cs.TotalWeight
			ls.TotalValue += cs.TotalValue
		}
		tree = append(tree, ls)
	}
	return tree
}

// firstContainers drops rows whose ContainerID appeared earlier.
func firstContainers(containers []model.Container) []model.Container {
	seen := make(map[model.ID]bool, len(containers))
	out := make([]model.Container, 0, len(containers))
	for _, c := range containers {
		if seen[c.ContainerID] {
			continue
		}
		seen[c.ContainerID] = true
		out = append(out, c)
	}
	return out
}

// Summarize computes the full overview from enriched items.
//
// ItemStats covers every item regardless of placement. Items linked to a
// container that is missing or orphaned are counted in ItemStats but appear
// in neither LooseItems nor LocationTree.
func Summarize(items []model.EnrichedItem, containers []model.Container, locations []model.Location) model.Summary {
	loose := Loose(items)
	return model.Summary{
		ItemStats:    Stats(items),
		LooseStats:   Stats(loose),
		LocationTree: LocationTree(items, containers, locations),
		LooseItems:   loose,
	}
}

// Collections is the set of base collections the summary is computed from.
type Collections struct {
	Items      []model.Item
	Links      []model.ItemLocationLink
	Containers []model.Container
	Locations  []model.Location
	Projects   []model.Project
}

// Build enriches and summarizes in one step, including the project count.
func Build(c Collections) model.Summary {
	enriched := EnrichWithLocations(c.Items, c.Links, c.Containers, c.Locations)
	summary := Summarize(enriched, c.Containers, c.Locations)
	summary.ProjectCount = len(c.Projects)
	return summary
}

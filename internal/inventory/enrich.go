// Package inventory joins the backend collections into placement views and
// computes per-container and per-location rollups.
//
// Every function here is total over its inputs: dangling links, duplicate
// links and orphan containers degrade to fallbacks instead of errors. Inputs
// are never modified.
package inventory

import "github.com/hobbyparts/hpt/internal/model"

// UnknownName labels a container or location that a link refers to but that
// is missing from the fetched collections.
const UnknownName = "Unknown"

// index holds first-match lookups over the base collections.
type index struct {
	linkByItem  map[model.ID]model.ItemLocationLink
	containers  map[model.ID]model.Container
	locations   map[model.ID]model.Location
	itemsByID   map[model.ID]model.Item
	linkCounter map[model.ID]int
}

func newIndex(items []model.Item, links []model.ItemLocationLink, containers []model.Container, locations []model.Location) *index {
	idx := &index{
		linkByItem:  make(map[model.ID]model.ItemLocationLink, len(links)),
		containers:  make(map[model.ID]model.Container, len(containers)),
		locations:   make(map[model.ID]model.Location, len(locations)),
		itemsByID:   make(map[model.ID]model.Item, len(items)),
		linkCounter: make(map[model.ID]int, len(links)),
	}

	// First link in input order wins when an item has several.
	for _, link := range links {
		idx.linkCounter[link.ItemID]++
		if _, seen := idx.linkByItem[link.ItemID]; !seen {
			idx.linkByItem[link.ItemID] = link
		}
	}
	for _, c := range containers {
		if _, seen := idx.containers[c.ContainerID]; !seen {
			idx.containers[c.ContainerID] = c
		}
	}
	for _, l := range locations {
		if _, seen := idx.locations[l.LocationID]; !seen {
			idx.locations[l.LocationID] = l
		}
	}
	for _, it := range items {
		if _, seen := idx.itemsByID[it.ItemID]; !seen {
			idx.itemsByID[it.ItemID] = it
		}
	}
	return idx
}

// Enrich resolves each item's current container.
//
// The result has the same length and order as items. For an item with
// several links the first link in links order is used. A link to a container
// missing from containers yields ContainerName UnknownName and no image.
// Location fields are left nil; use EnrichWithLocations to fill them.
func Enrich(items []model.Item, links []model.ItemLocationLink, containers []model.Container) []model.EnrichedItem {
	return enrich(items, newIndex(nil, links, containers, nil), false)
}

// EnrichWithLocations is Enrich plus resolution of the container's location.
func EnrichWithLocations(items []model.Item, links []model.ItemLocationLink, containers []model.Container, locations []model.Location) []model.EnrichedItem {
	return enrich(items, newIndex(nil, links, containers, locations), true)
}

func enrich(items []model.Item, idx *index, withLocations bool) []model.EnrichedItem {
	out := make([]model.EnrichedItem, len(items))
	for i, item := range items {
		out[i] = idx.enrichOne(item, withLocations)
	}
	return out
}

func (idx *index) enrichOne(item model.Item, withLocations bool) model.EnrichedItem {
	e := model.EnrichedItem{Item: item}

	link, ok := idx.linkByItem[item.ItemID]
	if !ok {
		return e
	}

	containerID := link.ContainerID
	e.ContainerID = &containerID

	container, ok := idx.containers[containerID]
	if !ok {
		name := UnknownName
		e.ContainerName = &name
		return e
	}

	name := container.ContainerName
	e.ContainerName = &name
	e.ContainerImage = container.Image

	if !withLocations || container.LocationID == nil {
		return e
	}
	if loc, ok := idx.locations[*container.LocationID]; ok {
		locID := loc.LocationID
		locName := loc.LocationName
		e.LocationID = &locID
		e.LocationName = &locName
	}
	return e
}

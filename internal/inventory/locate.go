package inventory

import (
	"strings"

	"github.com/hobbyparts/hpt/internal/model"
)

// MinQueryLength is the shortest query Locate will search for.
const MinQueryLength = 2

// Placement answers "where is this item?".
type Placement struct {
	ItemID        model.ID `json:"item_id" yaml:"item_id"`
	ItemName      string   `json:"item_name" yaml:"item_name"`
	ContainerName string   `json:"container_name" yaml:"container_name"`
	LocationName  string   `json:"location_name" yaml:"location_name"`
	Placed        bool     `json:"placed" yaml:"placed"`
}

// Locate finds items whose name contains query (case-insensitive) and reports
// where each one is stored. Queries shorter than MinQueryLength match nothing.
// Unresolvable containers and locations are reported as UnknownName.
func Locate(items []model.Item, links []model.ItemLocationLink, containers []model.Container, locations []model.Location, query string) []Placement {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinQueryLength {
		return nil
	}

	idx := newIndex(nil, links, containers, locations)
	var out []Placement
	for _, item := range items {
		if !strings.Contains(strings.ToLower(item.ItemName), q) {
			continue
		}
		out = append(out, idx.placement(item))
	}
	return out
}

func (idx *index) placement(item model.Item) Placement {
	p := Placement{
		ItemID:        item.ItemID,
		ItemName:      item.ItemName,
		ContainerName: UnknownName,
		LocationName:  UnknownName,
	}

	link, ok := idx.linkByItem[item.ItemID]
	if !ok {
		return p
	}
	p.Placed = true

	container, ok := idx.containers[link.ContainerID]
	if !ok {
		return p
	}
	p.ContainerName = container.ContainerName

	if container.LocationID == nil {
		return p
	}
	if loc, ok := idx.locations[*container.LocationID]; ok {
		p.LocationName = loc.LocationName
	}
	return p
}

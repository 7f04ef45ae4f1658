package model

// EnrichedItem is an Item with its current placement resolved.
//
// ContainerID and ContainerName are nil when the item has no link. When the
// link points at a container that no longer exists, ContainerID is set and
// ContainerName holds a fallback label. LocationID and LocationName are only
// filled when both the container and its location resolve.
type EnrichedItem struct {
	Item `yaml:",inline"`

	ContainerID    *ID     `json:"ContainerID" yaml:"container_id"`
	ContainerName  *string `json:"ContainerName" yaml:"container_name"`
	ContainerImage []byte  `json:"ContainerImage,omitempty" yaml:"-"`
	LocationID     *ID     `json:"LocationID,omitempty" yaml:"location_id,omitempty"`
	LocationName   *string `json:"LocationName,omitempty" yaml:"location_name,omitempty"`
}

// Placed reports whether the item has a link to some container.
func (e EnrichedItem) Placed() bool {
	return e.ContainerID != nil
}

// InContainer reports whether the item is linked to the given container.
func (e EnrichedItem) InContainer(containerID ID) bool {
	return e.ContainerID != nil && *e.ContainerID == containerID
}

// GetID returns the item ID as a string.
func (e EnrichedItem) GetID() string { return FormatID(e.ItemID) }

// GetKind returns "item".
func (e EnrichedItem) GetKind() string { return "item" }

// GetContent returns the item name.
func (e EnrichedItem) GetContent() string { return e.ItemName }

// GetLocation returns "Location / Container", or an empty string for loose items.
func (e EnrichedItem) GetLocation() string {
	if e.ContainerName == nil {
		return ""
	}
	if e.LocationName == nil {
		return *e.ContainerName
	}
	return *e.LocationName + " / " + *e.ContainerName
}

// ItemStats is a count/weight/value rollup over a set of items.
type ItemStats struct {
	Total  int     `json:"total" yaml:"total"`
	Weight float64 `json:"weight" yaml:"weight"`
	Value  float64 `json:"value" yaml:"value"`
}

// ContainerSummary is a container together with the items it holds.
type ContainerSummary struct {
	Container `yaml:",inline"`

	Items       []EnrichedItem `json:"items" yaml:"items,omitempty"`
	ItemCount   int            `json:"itemCount" yaml:"item_count"`
	TotalWeight float64        `json:"totalWeight" yaml:"total_weight"`
	TotalValue  float64        `json:"totalValue" yaml:"total_value"`
}

// LocationSummary is a location with its containers and their rollups.
type LocationSummary struct {
	Location `yaml:",inline"`

	Containers  []ContainerSummary `json:"containers" yaml:"containers"`
	ItemCount   int                `json:"itemCount" yaml:"item_count"`
	TotalWeight float64            `json:"totalWeight" yaml:"total_weight"`
	TotalValue  float64            `json:"totalValue" yaml:"total_value"`
}

// Summary is the full inventory overview.
type Summary struct {
	ProjectCount int               `json:"projectCount" yaml:"project_count"`
	ItemStats    ItemStats         `json:"itemStats" yaml:"item_stats"`
	LooseStats   ItemStats         `json:"looseStats" yaml:"loose_stats"`
	LocationTree []LocationSummary `json:"locationTree" yaml:"location_tree"`
	LooseItems   []EnrichedItem    `json:"looseItems" yaml:"loose_items"`
}

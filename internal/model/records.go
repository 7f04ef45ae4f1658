// Package model defines the records exchanged with the Hobby Part Tracker backend
// and the views derived from them.
package model

import "strconv"

// ID identifies a backend record. IDs are only ever compared for equality.
type ID = int64

// Item is a tracked physical part.
type Item struct {
	ItemID      ID     `json:"ItemID" yaml:"item_id"`
	ItemName    string `json:"ItemName" yaml:"item_name"`
	CategoryID  *ID    `json:"CategoryID,omitempty" yaml:"category_id,omitempty"`
	Description string `json:"Description,omitempty" yaml:"description,omitempty"`

	// Weight (grams), Price and Quantity are optional on the wire.
	// Use the accessor methods when summing.
	Weight   *float64 `json:"Weight,omitempty" yaml:"weight,omitempty"`
	Price    *float64 `json:"Price,omitempty" yaml:"price,omitempty"`
	Quantity *int     `json:"Quantity,omitempty" yaml:"quantity,omitempty"`

	// Image is base64 on the wire; encoding/json decodes it into raw bytes.
	Image []byte `json:"Image,omitempty" yaml:"-"`
}

// WeightOrZero returns the item weight, treating a missing value as 0.
func (i Item) WeightOrZero() float64 {
	if i.Weight == nil {
		return 0
	}
	return *i.Weight
}

// PriceOrZero returns the item price, treating a missing value as 0.
func (i Item) PriceOrZero() float64 {
	if i.Price == nil {
		return 0
	}
	return *i.Price
}

// QuantityOrZero returns the item quantity, treating a missing value as 0.
func (i Item) QuantityOrZero() int {
	if i.Quantity == nil {
		return 0
	}
	return *i.Quantity
}

// Container is a box or bin that holds items. LocationID is nil for an orphan container.
type Container struct {
	ContainerID   ID     `json:"ContainerID" yaml:"container_id"`
	ContainerName string `json:"ContainerName" yaml:"container_name"`
	LocationID    *ID    `json:"LocationID,omitempty" yaml:"location_id,omitempty"`
	Description   string `json:"Description,omitempty" yaml:"description,omitempty"`
	Image         []byte `json:"Image,omitempty" yaml:"-"`
}

// InLocation reports whether the container belongs to the given location.
func (c Container) InLocation(locationID ID) bool {
	return c.LocationID != nil && *c.LocationID == locationID
}

// Location is a physical place (room, shelf, building) holding containers.
type Location struct {
	LocationID   ID     `json:"LocationID" yaml:"location_id"`
	LocationName string `json:"LocationName" yaml:"location_name"`
	LocationType string `json:"LocationType,omitempty" yaml:"location_type,omitempty"`
	Address      string `json:"Address,omitempty" yaml:"address,omitempty"`
}

// ItemLocationLink records that an item currently sits in a container.
//
// The backend does not enforce it, but an item is meant to have at most one link.
type ItemLocationLink struct {
	ItemLocationID ID  `json:"ItemLocationID" yaml:"item_location_id"`
	ItemID         ID  `json:"ItemID" yaml:"item_id"`
	ContainerID    ID  `json:"ContainerID" yaml:"container_id"`
	UserID         *ID `json:"UserID" yaml:"user_id,omitempty"`
}

// Project is a hobby project. Only the count is used by the summary.
type Project struct {
	ProjectID   ID     `json:"ProjectID" yaml:"project_id"`
	ProjectName string `json:"ProjectName" yaml:"project_name"`
	Description string `json:"Description,omitempty" yaml:"description,omitempty"`
	Status      string `json:"Status,omitempty" yaml:"status,omitempty"`
}

// FormatID renders an ID for display and for URL paths.
func FormatID(id ID) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses a decimal ID.
func ParseID(s string) (ID, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Ptr returns a pointer to v. Handy for optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// GetID returns the container ID as a string.
func (c Container) GetID() string { return FormatID(c.ContainerID) }

// GetKind returns "container".
func (c Container) GetKind() string { return "container" }

// GetContent returns the container name.
func (c Container) GetContent() string { return c.ContainerName }

// GetLocation returns the location ID, or an empty string for orphans.
func (c Container) GetLocation() string {
	if c.LocationID == nil {
		return ""
	}
	return FormatID(*c.LocationID)
}

package api

import (
	"context"

	"github.com/hobbyparts/hpt/internal/model"
)

// Backend routes, relative to the base URL.
const (
	PathItems              = "/api/ItemsBlob/GetItems"
	PathContainers         = "/api/containers/GetContainers"
	PathLocations          = "/api/locations/GetLocations"
	PathItemLocations      = "/api/item_locations/GetItemLocations"
	PathProjects           = "/api/ProjectsBlob/GetProjects"
	PathAddItemLocation    = "/api/item_locations/AddItemLocation"
	PathDeleteItemLocation = "/api/item_locations/DeleteItemLocation/"
	PathHealth             = "/health"
)

// Items fetches every item.
func (c *Client) Items(ctx context.Context) ([]model.Item, error) {
	return getList[model.Item](ctx, c, PathItems)
}

// Containers fetches every container.
func (c *Client) Containers(ctx context.Context) ([]model.Container, error) {
	return getList[model.Container](ctx, c, PathContainers)
}

// Locations fetches every location.
func (c *Client) Locations(ctx context.Context) ([]model.Location, error) {
	return getList[model.Location](ctx, c, PathLocations)
}

// ItemLocations fetches every item-location link.
func (c *Client) ItemLocations(ctx context.Context) ([]model.ItemLocationLink, error) {
	return getList[model.ItemLocationLink](ctx, c, PathItemLocations)
}

// Projects fetches every project.
func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	return getList[model.Project](ctx, c, PathProjects)
}

// getList decodes a JSON array. A null body yields an empty, non-nil slice.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

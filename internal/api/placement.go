package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hobbyparts/hpt/internal/model"
)

// addItemLocationRequest is the AddItemLocation payload. UserID is always
// sent, as null, like the web frontend does.
type addItemLocationRequest struct {
	ItemID      model.ID  `json:"ItemID"`
	ContainerID model.ID  `json:"ContainerID"`
	UserID      *model.ID `json:"UserID"`
}

// AddItemLocation inserts a link row. The backend's response body is used when
// it describes the new row; otherwise the returned link has ItemLocationID 0.
func (c *Client) AddItemLocation(ctx context.Context, itemID, containerID model.ID) (model.ItemLocationLink, error) {
	created := model.ItemLocationLink{ItemID: itemID, ContainerID: containerID}

	resp, err := c.do(ctx, http.MethodPost, PathAddItemLocation, addItemLocationRequest{
		ItemID:      itemID,
		ContainerID: containerID,
	})
	if err != nil {
		return created, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil || len(raw) == 0 {
		return created, nil
	}
	var echoed model.ItemLocationLink
	if json.Unmarshal(raw, &echoed) == nil && echoed.ItemLocationID != 0 {
		return echoed, nil
	}
	return created, nil
}

// DeleteItemLocation removes a link row by its ItemLocationID.
func (c *Client) DeleteItemLocation(ctx context.Context, linkID model.ID) error {
	resp, err := c.do(ctx, http.MethodDelete, PathDeleteItemLocation+model.FormatID(linkID), nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// PlacementResult describes what SetItemPlacement changed.
type PlacementResult struct {
	ItemID  model.ID                 `json:"item_id"`
	Deleted []model.ItemLocationLink `json:"deleted"`
	Created *model.ItemLocationLink  `json:"created,omitempty"`
}

// SetItemPlacement moves an item into a container, or unassigns it when
// containerID is nil.
//
// The backend has no upsert, so this deletes every existing link for the
// item and then inserts the new one. The sequence is not atomic: if the
// insert fails after the deletes, the item is left unassigned and the error
// says so. The returned result always lists the links that were deleted.
func (c *Client) SetItemPlacement(ctx context.Context, itemID model.ID, containerID *model.ID) (*PlacementResult, error) {
	result := &PlacementResult{ItemID: itemID, Deleted: []model.ItemLocationLink{}}

	links, err := c.ItemLocations(ctx)
	if err != nil {
		return result, fmt.Errorf("list item locations: %w", err)
	}

	for _, link := range links {
		if link.ItemID != itemID {
			continue
		}
		if err := c.DeleteItemLocation(ctx, link.ItemLocationID); err != nil {
			return result, fmt.Errorf("delete link %d: %w", link.ItemLocationID, err)
		}
		result.Deleted = append(result.Deleted, link)
	}

	if containerID == nil {
		return result, nil
	}

	created, err := c.AddItemLocation(ctx, itemID, *containerID)
	if err != nil {
		if len(result.Deleted) > 0 {
			return result, fmt.Errorf("add link (item %d is now unassigned): %w", itemID, err)
		}
		return result, fmt.Errorf("add link: %w", err)
	}
	result.Created = &created
	return result, nil
}

// Health checks that the backend answers on its health route.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

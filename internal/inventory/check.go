package inventory

import (
	"fmt"

	"github.com/hobbyparts/hpt/internal/model"
)

// IssueType classifies a link-integrity problem.
type IssueType string

const (
	// IssueDuplicateLink: an item has more than one link row.
	IssueDuplicateLink IssueType = "duplicate_link"
	// IssueMissingItem: a link refers to an item that does not exist.
	IssueMissingItem IssueType = "missing_item"
	// IssueMissingContainer: a link refers to a container that does not exist.
	IssueMissingContainer IssueType = "missing_container"
	// IssueDuplicateContainer: two container rows share a ContainerID.
	IssueDuplicateContainer IssueType = "duplicate_container"
	// IssueOrphanContainer: a container has no location, or an unknown one.
	IssueOrphanContainer IssueType = "orphan_container"
)

// Issue is one integrity finding.
type Issue struct {
	Type        IssueType  `json:"type" yaml:"type"`
	Message     string     `json:"message" yaml:"message"`
	ItemID      *model.ID  `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	ContainerID *model.ID  `json:"container_id,omitempty" yaml:"container_id,omitempty"`
	LinkIDs     []model.ID `json:"link_ids,omitempty" yaml:"link_ids,omitempty"`
}

// CheckLinks reports data the backend accepted but the views cannot place
// cleanly. Enrichment tolerates all of these; this only makes them visible.
//
// Issues are ordered by type, then by input order.
func CheckLinks(items []model.Item, links []model.ItemLocationLink, containers []model.Container, locations []model.Location) []Issue {
	idx := newIndex(items, links, containers, locations)
	var issues []Issue

	reported := make(map[model.ID]bool)
	for _, link := range links {
		if idx.linkCounter[link.ItemID] < 2 || reported[link.ItemID] {
			continue
		}
		reported[link.ItemID] = true

		var ids []model.ID
		for _, other := range links {
			if other.ItemID == link.ItemID {
				ids = append(ids, other.ItemLocationID)
			}
		}
		itemID := link.ItemID
		issues = append(issues, Issue{
			Type:    IssueDuplicateLink,
			Message: fmt.Sprintf("item %d has %d links; link %d is used", itemID, len(ids), ids[0]),
			ItemID:  &itemID,
			LinkIDs: ids,
		})
	}

	for _, link := range links {
		if _, ok := idx.itemsByID[link.ItemID]; ok {
			continue
		}
		itemID := link.ItemID
		issues = append(issues, Issue{
			Type:    IssueMissingItem,
			Message: fmt.Sprintf("link %d refers to missing item %d", link.ItemLocationID, itemID),
			ItemID:  &itemID,
			LinkIDs: []model.ID{link.ItemLocationID},
		})
	}

	for _, link := range links {
		if _, ok := idx.containers[link.ContainerID]; ok {
			continue
		}
		itemID := link.ItemID
		containerID := link.ContainerID
		issues = append(issues, Issue{
			Type:        IssueMissingContainer,
			Message:     fmt.Sprintf("link %d refers to missing container %d", link.ItemLocationID, containerID),
			ItemID:      &itemID,
			ContainerID: &containerID,
			LinkIDs:     []model.ID{link.ItemLocationID},
		})
	}

	rows := make(map[model.ID]int, len(containers))
	for _, c := range containers {
		rows[c.ContainerID]++
	}
	for _, c := range firstContainers(containers) {
		if n := rows[c.ContainerID]; n > 1 {
			containerID := c.ContainerID
			issues = append(issues, Issue{
				Type:        IssueDuplicateContainer,
				Message:     fmt.Sprintf("container %d has %d rows; %q is used", containerID, n, c.ContainerName),
				ContainerID: &containerID,
			})
		}
	}

	for _, c := range firstContainers(containers) {
		if c.LocationID != nil {
			if _, ok := idx.locations[*c.LocationID]; ok {
				continue
			}
		}
		containerID := c.ContainerID
		msg := fmt.Sprintf("container %q has no location", c.ContainerName)
		if c.LocationID != nil {
			msg = fmt.Sprintf("container %q refers to missing location %d", c.ContainerName, *c.LocationID)
		}
		issues = append(issues, Issue{
			Type:        IssueOrphanContainer,
			Message:     msg,
			ContainerID: &containerID,
		})
	}

	return issues
}

package api

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hobbyparts/hpt/internal/model"
)

// Collection names a base collection in a Snapshot.
type Collection string

const (
	CollectionItems         Collection = "items"
	CollectionContainers    Collection = "containers"
	CollectionLocations     Collection = "locations"
	CollectionItemLocations Collection = "item_locations"
	CollectionProjects      Collection = "projects"
)

// SnapshotOptions selects optional collections.
type SnapshotOptions struct {
	// Projects also fetches the project list (only the summary needs it).
	Projects bool
}

// Snapshot is a fully materialized copy of the base collections.
//
// Collections whose fetch failed are nil and their error is kept in Errors.
type Snapshot struct {
	Items      []model.Item
	Containers []model.Container
	Locations  []model.Location
	Links      []model.ItemLocationLink
	Projects   []model.Project

	Errors map[Collection]error
}

// Err joins every per-collection error, in a stable order, or returns nil.
func (s *Snapshot) Err() error {
	if len(s.Errors) == 0 {
		return nil
	}
	var errs []error
	for _, name := range []Collection{
		CollectionItems,
		CollectionContainers,
		CollectionLocations,
		CollectionItemLocations,
		CollectionProjects,
	} {
		if err, ok := s.Errors[name]; ok {
			errs = append(errs, fmt.Errorf("fetch %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Failed lists the collections that could not be fetched.
func (s *Snapshot) Failed() []Collection {
	var out []Collection
	for _, name := range []Collection{
		CollectionItems,
		CollectionContainers,
		CollectionLocations,
		CollectionItemLocations,
		CollectionProjects,
	} {
		if _, ok := s.Errors[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Snapshot fetches items, containers, locations and item-location links
// concurrently, plus projects when requested. A failed fetch does not cancel
// the others; Snapshot returns once every request has finished. The returned
// error is Snapshot.Err(), so callers that need all-or-nothing can stop on it
// while callers that can work with partial data inspect Errors.
func (c *Client) Snapshot(ctx context.Context, opts SnapshotOptions) (*Snapshot, error) {
	snap := &Snapshot{}
	var mu sync.Mutex

	// No errgroup.WithContext: one failure must not cancel the siblings.
	// Every fetch still reports through the group so Wait tells whether
	// anything failed.
	var g errgroup.Group
	fetch := func(name Collection, run func() error) {
		g.Go(func() error {
			err := run()
			if err != nil {
				mu.Lock()
				if snap.Errors == nil {
					snap.Errors = make(map[Collection]error)
				}
				snap.Errors[name] = err
				mu.Unlock()
			}
			return err
		})
	}

	fetch(CollectionItems, func() (err error) {
		snap.Items, err = c.Items(ctx)
		return err
	})
	fetch(CollectionContainers, func() (err error) {
		snap.Containers, err = c.Containers(ctx)
		return err
	})
	fetch(CollectionLocations, func() (err error) {
		snap.Locations, err = c.Locations(ctx)
		return err
	})
	fetch(CollectionItemLocations, func() (err error) {
		snap.Links, err = c.ItemLocations(ctx)
		return err
	})
	if opts.Projects {
		fetch(CollectionProjects, func() (err error) {
			snap.Projects, err = c.Projects(ctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return snap, snap.Err()
	}
	return snap, nil
}

// Package resolve turns references typed on the command line into records.
//
// A reference is tried, in order, as a numeric ID ("12" or "#12"), as an
// exact case-insensitive name, and as a slug ("bin-a" for "Bin A").
package resolve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hobbyparts/hpt/internal/model"
	"github.com/hobbyparts/hpt/internal/slugs"
)

// ErrNotFound is returned (wrapped) when a reference matches nothing.
var ErrNotFound = errors.New("reference not found")

// Candidate is a resolvable record.
type Candidate struct {
	ID   model.ID `json:"id"`
	Name string   `json:"name"`
}

// AmbiguousError lists every record a reference matched.
type AmbiguousError struct {
	Kind    string
	Ref     string
	Matches []Candidate
}

func (e *AmbiguousError) Error() string {
	parts := make([]string, 0, len(e.Matches))
	for _, m := range e.Matches {
		parts = append(parts, fmt.Sprintf("%s (#%d)", m.Name, m.ID))
	}
	return fmt.Sprintf("ambiguous %s reference %q matches: %s", e.Kind, e.Ref, strings.Join(parts, ", "))
}

// Resolver resolves references for one kind of record.
type Resolver struct {
	kind   string
	byID   map[model.ID]Candidate
	byName map[string][]Candidate
	bySlug map[string][]Candidate
}

// New creates a Resolver. kind is used in error messages ("item", "container").
func New(kind string, candidates []Candidate) *Resolver {
	r := &Resolver{
		kind:   kind,
		byID:   make(map[model.ID]Candidate, len(candidates)),
		byName: make(map[string][]Candidate),
		bySlug: make(map[string][]Candidate),
	}
	for _, c := range candidates {
		if _, dup := r.byID[c.ID]; dup {
			continue
		}
		r.byID[c.ID] = c

		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name != "" {
			r.byName[name] = append(r.byName[name], c)
		}
		if s := slugs.Slug(c.Name); s != "" {
			r.bySlug[s] = append(r.bySlug[s], c)
		}
	}
	return r
}

// ForItems builds a Resolver over items.
func ForItems(items []model.Item) *Resolver {
	cands := make([]Candidate, 0, len(items))
	for _, it := range items {
		cands = append(cands, Candidate{ID: it.ItemID, Name: it.ItemName})
	}
	return New("item", cands)
}

// ForContainers builds a Resolver over containers.
func ForContainers(containers []model.Container) *Resolver {
	cands := make([]Candidate, 0, len(containers))
	for _, c := range containers {
		cands = append(cands, Candidate{ID: c.ContainerID, Name: c.ContainerName})
	}
	return New("container", cands)
}

// Resolve returns the single record ref names. It returns an error wrapping
// ErrNotFound when nothing matches and an *AmbiguousError when a name or
// slug matches more than one record.
func (r *Resolver) Resolve(ref string) (Candidate, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Candidate{}, fmt.Errorf("empty %s reference: %w", r.kind, ErrNotFound)
	}

	if id, ok := model.ParseID(strings.TrimPrefix(ref, "#")); ok {
		if c, found := r.byID[id]; found {
			return c, nil
		}
		if strings.HasPrefix(ref, "#") {
			return Candidate{}, fmt.Errorf("%s #%d: %w", r.kind, id, ErrNotFound)
		}
	}

	if matches := r.byName[strings.ToLower(ref)]; len(matches) > 0 {
		return r.pick(ref, matches)
	}
	if matches := r.bySlug[slugs.Slug(ref)]; len(matches) > 0 {
		return r.pick(ref, matches)
	}

	return Candidate{}, fmt.Errorf("%s %q: %w", r.kind, ref, ErrNotFound)
}

func (r *Resolver) pick(ref string, matches []Candidate) (Candidate, error) {
	if len(matches) == 1 {
		return matches[0], nil
	}
	sorted := append([]Candidate(nil), matches...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return Candidate{}, &AmbiguousError{Kind: r.kind, Ref: ref, Matches: sorted}
}

package catalog

import (
	"fmt"
	"log"
	"sync"

	"backend-trailmap/internal/track"
)

// DuplicateSlugError reports two track files normalizing to the same
// slug. The catalog cannot keep its uniqueness invariant, so the build
// fails.
type DuplicateSlugError struct {
	Slug string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate route slug %q", e.Slug)
}

// Catalog is the ordered, read-only set of displayable routes. Built
// once; a change to the inputs requires a full rebuild.
type Catalog struct {
	routes []*Route
	bySlug map[string]*Route
}

// Build joins enriched tracks with authored metadata. A slug present on
// only one side is dropped with a warning and never appears
// half-populated; duplicate slugs fail the whole build.
func Build(files []track.File, meta []Metadata) (*Catalog, error) {
	metaBySlug := make(map[string]Metadata, len(meta))
	for _, m := range meta {
		if _, ok := metaBySlug[m.Slug]; ok {
			return nil, &DuplicateSlugError{Slug: m.Slug}
		}
		metaBySlug[m.Slug] = m
	}

	c := &Catalog{bySlug: make(map[string]*Route, len(files))}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Slug] {
			return nil, &DuplicateSlugError{Slug: f.Slug}
		}
		seen[f.Slug] = true
		m, ok := metaBySlug[f.Slug]
		if !ok {
			log.Printf("catalog: track %q has no metadata, dropping", f.Slug)
			continue
		}
		r := &Route{
			Slug:     f.Slug,
			Name:     f.Name,
			Geometry: f.Geometry,
			Meta:     m,
			Raw:      f.Raw,
		}
		c.routes = append(c.routes, r)
		c.bySlug[f.Slug] = r
	}

	for _, m := range meta {
		if _, ok := c.bySlug[m.Slug]; !ok {
			log.Printf("catalog: metadata %q has no track, dropping", m.Slug)
		}
	}
	return c, nil
}

// Get returns the route for a slug.
func (c *Catalog) Get(slug string) (*Route, bool) {
	r, ok := c.bySlug[slug]
	return r, ok
}

// Routes returns all routes in build order.
func (c *Catalog) Routes() []*Route {
	return c.routes
}

// Slugs returns all slugs in build order.
func (c *Catalog) Slugs() []string {
	slugs := make([]string, len(c.routes))
	for i, r := range c.routes {
		slugs[i] = r.Slug
	}
	return slugs
}

func (c *Catalog) Len() int { return len(c.routes) }

// Holder hands out the current catalog and lets an admin reload swap in
// a freshly built one. Readers always see a complete catalog.
type Holder struct {
	mu sync.RWMutex
	c  *Catalog
}

func NewHolder(c *Catalog) *Holder {
	return &Holder{c: c}
}

func (h *Holder) Get() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.c
}

func (h *Holder) Swap(c *Catalog) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.c = c
}

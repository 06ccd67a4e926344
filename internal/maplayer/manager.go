package maplayer

import (
	"fmt"

	"backend-trailmap/internal/catalog"
)

const (
	strokeWidth = 3
	hoverWidth  = 5
	// The fill layer is wider than the stroke so routes are clickable
	// without pixel-perfect aim. It stays fully transparent.
	fillWidth = 20
)

// DuplicateLayerError signals a duplicate layer registration on the
// same surface. Slug uniqueness makes this unreachable; if it fires it
// is a programming error, not a runtime condition to recover from.
type DuplicateLayerError struct {
	ID string
}

func (e *DuplicateLayerError) Error() string {
	return fmt.Sprintf("layer %q already registered on this surface", e.ID)
}

// Manager bridges catalog entries to a map surface's source/layer
// primitives. It owns one LayerPair per slug for the lifetime of the
// surface and forwards click events to the selection machinery. It is
// driven by a single event loop and is not safe for concurrent use.
type Manager struct {
	catalog  *catalog.Catalog
	surface  Surface
	pairs    map[string]*LayerPair
	order    []string
	onSelect func(slug string)
}

func NewManager(c *catalog.Catalog) *Manager {
	return &Manager{
		catalog: c,
		pairs:   map[string]*LayerPair{},
	}
}

// OnSelect subscribes the selection callback invoked on fill-layer
// clicks. The subscription is dropped at Teardown.
func (m *Manager) OnSelect(fn func(slug string)) {
	m.onSelect = fn
}

// Ready reports whether a surface is attached and layers registered.
func (m *Manager) Ready() bool { return m.surface != nil }

// Register attaches the surface and creates a source, a stroke layer
// and a fill layer for every catalog entry not yet registered.
// Re-invoking it for already-registered slugs is a no-op.
func (m *Manager) Register(s Surface) error {
	m.surface = s
	for _, r := range m.catalog.Routes() {
		if _, ok := m.pairs[r.Slug]; ok {
			continue
		}
		if err := m.registerRoute(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) registerRoute(r *catalog.Route) error {
	pair := &LayerPair{
		SourceID:      r.Slug,
		StrokeLayerID: r.Slug + "-stroke",
		FillLayerID:   r.Slug + "-fill",
		Visible:       true,
	}
	for _, id := range []string{pair.StrokeLayerID, pair.FillLayerID} {
		if m.hasLayer(id) {
			return &DuplicateLayerError{ID: id}
		}
	}

	if err := m.surface.AddSource(pair.SourceID, r.Feature()); err != nil {
		return err
	}
	if err := m.surface.AddLayer(Layer{
		ID:      pair.StrokeLayerID,
		Source:  pair.SourceID,
		Type:    "line",
		Color:   r.Meta.Color,
		Width:   strokeWidth,
		Opacity: 1,
	}); err != nil {
		return err
	}
	if err := m.surface.AddLayer(Layer{
		ID:      pair.FillLayerID,
		Source:  pair.SourceID,
		Type:    "line",
		Width:   fillWidth,
		Opacity: 0,
	}); err != nil {
		return err
	}

	m.pairs[r.Slug] = pair
	m.order = append(m.order, r.Slug)
	return nil
}

func (m *Manager) hasLayer(id string) bool {
	for _, p := range m.pairs {
		if p.StrokeLayerID == id || p.FillLayerID == id {
			return true
		}
	}
	return false
}

// HandleHover updates the cursor affordance and stroke width of the
// hovered route. Visual feedback only; no selection state changes.
func (m *Manager) HandleHover(slug string, entered bool) error {
	pair, ok := m.pairs[slug]
	if !ok || m.surface == nil {
		return nil
	}
	cursor, width := "", float64(strokeWidth)
	if entered {
		cursor, width = "pointer", hoverWidth
	}
	if err := m.surface.SetCursor(cursor); err != nil {
		return err
	}
	return m.surface.SetLineWidth(pair.StrokeLayerID, width)
}

// HandleClick forwards a fill-layer click to the selection subscriber.
// The manager itself never decides visibility.
func (m *Manager) HandleClick(slug string) {
	if _, ok := m.pairs[slug]; !ok {
		return
	}
	if m.onSelect != nil {
		m.onSelect(slug)
	}
}

// SetVisible shows or hides one route's pair.
func (m *Manager) SetVisible(slug string, visible bool) error {
	pair, ok := m.pairs[slug]
	if !ok || m.surface == nil {
		return nil
	}
	if pair.Visible == visible {
		return nil
	}
	if err := m.surface.SetLayerVisibility(pair.StrokeLayerID, visible); err != nil {
		return err
	}
	if err := m.surface.SetLayerVisibility(pair.FillLayerID, visible); err != nil {
		return err
	}
	pair.Visible = visible
	return nil
}

// FitTo frames the viewport on one route's bounding box.
func (m *Manager) FitTo(slug string, padding int) error {
	r, ok := m.catalog.Get(slug)
	if !ok || m.surface == nil {
		return nil
	}
	b, ok := r.Bounds()
	if !ok {
		return nil
	}
	return m.surface.FitBounds(b, padding)
}

// ResetView returns the surface to its initial center and zoom.
func (m *Manager) ResetView() error {
	if m.surface == nil {
		return nil
	}
	return m.surface.ResetView()
}

// Slugs returns the registered slugs in registration order.
func (m *Manager) Slugs() []string {
	return m.order
}

// Pair returns a snapshot of one route's layer pair.
func (m *Manager) Pair(slug string) (LayerPair, bool) {
	p, ok := m.pairs[slug]
	if !ok {
		return LayerPair{}, false
	}
	return *p, true
}

// Teardown removes every source, layer and subscription and drops the
// surface reference. A later Register on a fresh surface behaves
// exactly like a first registration.
func (m *Manager) Teardown() {
	if m.surface != nil {
		for _, slug := range m.order {
			pair := m.pairs[slug]
			_ = m.surface.RemoveLayer(pair.FillLayerID)
			_ = m.surface.RemoveLayer(pair.StrokeLayerID)
			_ = m.surface.RemoveSource(pair.SourceID)
		}
	}
	m.surface = nil
	m.onSelect = nil
	m.pairs = map[string]*LayerPair{}
	m.order = nil
}

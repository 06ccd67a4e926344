package selection

import (
	"backend-trailmap/internal/catalog"
	"backend-trailmap/internal/maplayer"
)

// State is either unselected or one catalog slug. An external value
// naming an unknown slug resolves to unselected; it is never an error.
type State struct {
	Selected bool   `json:"selected"`
	Slug     string `json:"slug,omitempty"`
}

// Resolve derives the selection state from the external value and the
// catalog. Pure: the same inputs always produce the same state.
func Resolve(value string, c *catalog.Catalog) State {
	if value == "" {
		return State{}
	}
	if _, ok := c.Get(value); !ok {
		return State{}
	}
	return State{Selected: true, Slug: value}
}

// Machine recomputes the selection from every observed change of the
// external value and drives layer visibility and viewport framing
// through the manager. Like the manager it runs on a single event loop.
type Machine struct {
	catalog *catalog.Catalog
	manager *maplayer.Manager
	padding int

	ready   bool
	applied bool
	current State
	pending *string
}

func NewMachine(c *catalog.Catalog, m *maplayer.Manager, padding int) *Machine {
	return &Machine{catalog: c, manager: m, padding: padding}
}

// State returns the last applied selection.
func (sm *Machine) State() State { return sm.current }

// MarkReady is called once the surface is registered. A value that
// arrived earlier is replayed now; without one the registration default
// (everything visible, initial viewport) already matches unselected.
func (sm *Machine) MarkReady() error {
	sm.ready = true
	if sm.pending != nil {
		value := *sm.pending
		sm.pending = nil
		return sm.Apply(value)
	}
	sm.current = State{}
	sm.applied = true
	return nil
}

// Apply recomputes the state from the external value and issues the
// corresponding commands. Before the manager is ready the latest value
// is queued rather than dropped. Applying a value that resolves to the
// current state issues nothing.
func (sm *Machine) Apply(value string) error {
	if !sm.ready || !sm.manager.Ready() {
		v := value
		sm.pending = &v
		return nil
	}

	next := Resolve(value, sm.catalog)
	if sm.applied && next == sm.current {
		return nil
	}

	if next.Selected {
		for _, slug := range sm.manager.Slugs() {
			if err := sm.manager.SetVisible(slug, slug == next.Slug); err != nil {
				return err
			}
		}
		if err := sm.manager.FitTo(next.Slug, sm.padding); err != nil {
			return err
		}
	} else {
		for _, slug := range sm.manager.Slugs() {
			if err := sm.manager.SetVisible(slug, true); err != nil {
				return err
			}
		}
		if err := sm.manager.ResetView(); err != nil {
			return err
		}
	}

	sm.current = next
	sm.applied = true
	return nil
}

// Reset forgets the applied state when the surface goes away. The next
// MarkReady starts from scratch, exactly like a first run.
func (sm *Machine) Reset() {
	sm.ready = false
	sm.applied = false
	sm.current = State{}
	sm.pending = nil
}

package maplayer

import (
	"fmt"
	"testing"

	"backend-trailmap/internal/catalog"
	"backend-trailmap/internal/shared/geo"
	"backend-trailmap/internal/shared/geojson"
	"backend-trailmap/internal/track"
)

// fakeSurface records every command so tests can assert exact effects.
type fakeSurface struct {
	sources map[string]geojson.Feature
	layers  map[string]Layer
	log     []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		sources: map[string]geojson.Feature{},
		layers:  map[string]Layer{},
	}
}

func (f *fakeSurface) AddSource(id string, data geojson.Feature) error {
	if _, ok := f.sources[id]; ok {
		return fmt.Errorf("duplicate source %q", id)
	}
	f.sources[id] = data
	f.log = append(f.log, "add_source:"+id)
	return nil
}

func (f *fakeSurface) AddLayer(layer Layer) error {
	if _, ok := f.layers[layer.ID]; ok {
		return fmt.Errorf("duplicate layer %q", layer.ID)
	}
	f.layers[layer.ID] = layer
	f.log = append(f.log, "add_layer:"+layer.ID)
	return nil
}

func (f *fakeSurface) RemoveLayer(id string) error {
	delete(f.layers, id)
	f.log = append(f.log, "remove_layer:"+id)
	return nil
}

func (f *fakeSurface) RemoveSource(id string) error {
	delete(f.sources, id)
	f.log = append(f.log, "remove_source:"+id)
	return nil
}

func (f *fakeSurface) SetLayerVisibility(id string, visible bool) error {
	f.log = append(f.log, fmt.Sprintf("visibility:%s:%t", id, visible))
	return nil
}

func (f *fakeSurface) SetLineWidth(id string, width float64) error {
	f.log = append(f.log, fmt.Sprintf("width:%s:%v", id, width))
	return nil
}

func (f *fakeSurface) SetCursor(cursor string) error {
	f.log = append(f.log, "cursor:"+cursor)
	return nil
}

func (f *fakeSurface) FitBounds(b geo.Bounds, padding int) error {
	f.log = append(f.log, fmt.Sprintf("fit:%v:%d", b, padding))
	return nil
}

func (f *fakeSurface) ResetView() error {
	f.log = append(f.log, "reset_view")
	return nil
}

func testCatalog(t *testing.T, slugs ...string) *catalog.Catalog {
	t.Helper()
	var files []track.File
	var meta []catalog.Metadata
	for i, slug := range slugs {
		tr := track.Track{Slug: slug, Points: []track.Point{
			{Lng: 18.0 + float64(i), Lat: 59.0},
			{Lng: 18.1 + float64(i), Lat: 59.1},
		}}
		files = append(files, track.File{
			Slug:     slug,
			Name:     slug + ".gpx",
			Raw:      []byte("<gpx/>"),
			Track:    tr,
			Geometry: track.Enrich(tr),
		})
		meta = append(meta, catalog.Metadata{Slug: slug, Color: "#123456"})
	}
	c, err := catalog.Build(files, meta)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func TestRegisterCreatesPairs(t *testing.T) {
	m := NewManager(testCatalog(t, "alpha", "beta"))
	s := newFakeSurface()

	if m.Ready() {
		t.Fatalf("manager must not be ready before registration")
	}
	if err := m.Register(s); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !m.Ready() {
		t.Fatalf("manager should be ready")
	}

	if len(s.sources) != 2 || len(s.layers) != 4 {
		t.Fatalf("expected 2 sources and 4 layers, got %d/%d", len(s.sources), len(s.layers))
	}

	pair, ok := m.Pair("alpha")
	if !ok || !pair.Visible {
		t.Fatalf("expected visible alpha pair: %+v", pair)
	}

	stroke := s.layers[pair.StrokeLayerID]
	if stroke.Color != "#123456" || stroke.Opacity != 1 {
		t.Fatalf("unexpected stroke layer: %+v", stroke)
	}
	fill := s.layers[pair.FillLayerID]
	if fill.Opacity != 0 || fill.Width <= stroke.Width {
		t.Fatalf("fill must be transparent and wider than the stroke: %+v", fill)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	m := NewManager(testCatalog(t, "alpha"))
	s := newFakeSurface()

	if err := m.Register(s); err != nil {
		t.Fatalf("register: %v", err)
	}
	commands := len(s.log)
	if err := m.Register(s); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if len(s.log) != commands {
		t.Fatalf("re-registration must be a no-op, got %d new commands", len(s.log)-commands)
	}
}

func TestHover(t *testing.T) {
	m := NewManager(testCatalog(t, "alpha"))
	s := newFakeSurface()
	if err := m.Register(s); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := m.HandleHover("alpha", true); err != nil {
		t.Fatalf("hover: %v", err)
	}
	if s.log[len(s.log)-2] != "cursor:pointer" {
		t.Fatalf("expected pointer cursor, log: %v", s.log)
	}
	if s.log[len(s.log)-1] != "width:alpha-stroke:5" {
		t.Fatalf("expected widened stroke, log: %v", s.log)
	}

	if err := m.HandleHover("alpha", false); err != nil {
		t.Fatalf("hover out: %v", err)
	}
	if s.log[len(s.log)-1] != "width:alpha-stroke:3" {
		t.Fatalf("expected restored stroke, log: %v", s.log)
	}

	// hover over something unknown is ignored
	commands := len(s.log)
	if err := m.HandleHover("nope", true); err != nil {
		t.Fatalf("unknown hover: %v", err)
	}
	if len(s.log) != commands {
		t.Fatalf("unknown slug must not issue commands")
	}
}

func TestClickForwardsToSubscriber(t *testing.T) {
	m := NewManager(testCatalog(t, "alpha"))
	if err := m.Register(newFakeSurface()); err != nil {
		t.Fatalf("register: %v", err)
	}

	var clicked string
	m.OnSelect(func(slug string) { clicked = slug })

	m.HandleClick("alpha")
	if clicked != "alpha" {
		t.Fatalf("expected click forwarded, got %q", clicked)
	}

	clicked = ""
	m.HandleClick("nope")
	if clicked != "" {
		t.Fatalf("unknown slug must not be forwarded")
	}
}

func TestSetVisibleSkipsRedundantCommands(t *testing.T) {
	m := NewManager(testCatalog(t, "alpha"))
	s := newFakeSurface()
	if err := m.Register(s); err != nil {
		t.Fatalf("register: %v", err)
	}

	commands := len(s.log)
	if err := m.SetVisible("alpha", true); err != nil {
		t.Fatalf("set visible: %v", err)
	}
	if len(s.log) != commands {
		t.Fatalf("visible->visible must issue nothing")
	}

	if err := m.SetVisible("alpha", false); err != nil {
		t.Fatalf("hide: %v", err)
	}
	pair, _ := m.Pair("alpha")
	if pair.Visible {
		t.Fatalf("expected hidden pair")
	}
	if len(s.log) != commands+2 {
		t.Fatalf("expected visibility command per layer, log: %v", s.log)
	}
}

func TestTeardownAndReRegister(t *testing.T) {
	m := NewManager(testCatalog(t, "alpha", "beta"))
	first := newFakeSurface()
	if err := m.Register(first); err != nil {
		t.Fatalf("register: %v", err)
	}
	firstAdds := append([]string(nil), first.log...)

	m.OnSelect(func(string) { t.Fatalf("subscription must not leak past teardown") })
	m.Teardown()

	if len(first.sources) != 0 || len(first.layers) != 0 {
		t.Fatalf("teardown must remove all sources and layers")
	}
	if m.Ready() {
		t.Fatalf("manager must not be ready after teardown")
	}
	m.HandleClick("alpha")

	second := newFakeSurface()
	if err := m.Register(second); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if len(second.log) != len(firstAdds) {
		t.Fatalf("fresh registration must match first: %v vs %v", second.log, firstAdds)
	}
	for i := range firstAdds {
		if second.log[i] != firstAdds[i] {
			t.Fatalf("fresh registration diverged at %d: %q vs %q", i, second.log[i], firstAdds[i])
		}
	}
}

func TestFitToAndResetView(t *testing.T) {
	m := NewManager(testCatalog(t, "alpha"))
	s := newFakeSurface()
	if err := m.Register(s); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := m.FitTo("alpha", 80); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if s.log[len(s.log)-1] != fmt.Sprintf("fit:%v:80", geo.Bounds{MinLng: 18.0, MinLat: 59.0, MaxLng: 18.1, MaxLat: 59.1}) {
		t.Fatalf("unexpected fit command: %v", s.log[len(s.log)-1])
	}

	if err := m.ResetView(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.log[len(s.log)-1] != "reset_view" {
		t.Fatalf("expected reset command")
	}
}

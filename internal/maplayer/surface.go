package maplayer

import (
	"backend-trailmap/internal/shared/geo"
	"backend-trailmap/internal/shared/geojson"
)

// Surface is the externally owned map rendering surface. It is acquired
// on map-ready, handed to the manager via Register, and must not be
// used after Teardown releases it.
type Surface interface {
	AddSource(id string, data geojson.Feature) error
	AddLayer(layer Layer) error
	RemoveLayer(id string) error
	RemoveSource(id string) error
	SetLayerVisibility(id string, visible bool) error
	SetLineWidth(id string, width float64) error
	SetCursor(cursor string) error
	FitBounds(b geo.Bounds, padding int) error
	ResetView() error
}

// Layer describes one map layer bound to a geometry source.
type Layer struct {
	ID      string  `json:"id"`
	Source  string  `json:"source"`
	Type    string  `json:"type"` // "line" or "fill"
	Color   string  `json:"color,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Opacity float64 `json:"opacity"`
}

// LayerPair is the visual stroke layer plus the invisible, wider fill
// layer acting as the hit region for one route.
type LayerPair struct {
	SourceID      string
	StrokeLayerID string
	FillLayerID   string
	Visible       bool
}

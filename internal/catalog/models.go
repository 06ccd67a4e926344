package catalog

import (
	"backend-trailmap/internal/shared/geo"
	"backend-trailmap/internal/shared/geojson"
	"backend-trailmap/internal/track"
)

// Metadata is the authored half of a route: everything a human wrote
// about it, keyed by the same slug as the track file.
type Metadata struct {
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Location    string  `json:"location"`
	Color       string  `json:"color"`
}

// Route composes one enriched track with its authored metadata. The
// original GPX bytes are kept byte-exact for download.
type Route struct {
	Slug     string
	Name     string
	Geometry track.Geometry
	Meta     Metadata
	Raw      []byte
}

// Bounds returns the bounding box of the route's point sequence.
func (r *Route) Bounds() (geo.Bounds, bool) {
	return r.Geometry.Bounds()
}

// Feature renders the route as a GeoJSON LineString. Positions carry
// elevation as a third coordinate when the source point had one.
func (r *Route) Feature() geojson.Feature {
	coords := make([][]float64, 0, len(r.Geometry.Points))
	for _, p := range r.Geometry.Points {
		if p.HasElevation {
			coords = append(coords, []float64{p.Lng, p.Lat, p.ElevationM})
		} else {
			coords = append(coords, []float64{p.Lng, p.Lat})
		}
	}
	return geojson.NewLineString(coords, map[string]any{
		"slug":  r.Slug,
		"color": r.Meta.Color,
	})
}

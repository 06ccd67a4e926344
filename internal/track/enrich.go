package track

import "backend-trailmap/internal/shared/geo"

// Enrich derives distance and elevation gain from a track. Tracks of
// length 0 or 1 yield zero for both; that is a valid result, not an
// error.
func Enrich(t Track) Geometry {
	g := Geometry{Points: t.Points}
	for i := 0; i+1 < len(t.Points); i++ {
		a, b := t.Points[i], t.Points[i+1]
		g.DistanceKm += geo.HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)

		// Only climbs count. A point without elevation contributes 0
		// to the difference rather than being skipped, so the total is
		// the same however the gaps are distributed.
		if d := elevation(b) - elevation(a); d > 0 {
			g.ElevationGainM += d
		}
	}
	return g
}

func elevation(p Point) float64 {
	if !p.HasElevation {
		return 0
	}
	return p.ElevationM
}

// Bounds computes the axis-aligned box containing every point of the
// geometry, seeded with the first point. ok is false for empty tracks.
func (g Geometry) Bounds() (b geo.Bounds, ok bool) {
	if len(g.Points) == 0 {
		return geo.Bounds{}, false
	}
	b = geo.NewBounds(g.Points[0].Lng, g.Points[0].Lat)
	for _, p := range g.Points[1:] {
		b = b.Extend(p.Lng, p.Lat)
	}
	return b, true
}

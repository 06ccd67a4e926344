package track

// Point is one coordinate of a track, in file order.
type Point struct {
	Lng          float64 `json:"lng"`
	Lat          float64 `json:"lat"`
	ElevationM   float64 `json:"elevation_m"`
	HasElevation bool    `json:"-"`
}

// Track is the ordered point sequence parsed from one GPX file.
// It may legitimately be empty or hold a single point.
type Track struct {
	Slug   string
	Points []Point
}

// Geometry carries the statistics derived from a track. Recomputing it
// from the same track always yields the same values.
type Geometry struct {
	DistanceKm     float64 `json:"distance_km"`
	ElevationGainM float64 `json:"elevation_gain_m"`
	Points         []Point `json:"-"`
}

// File is one ingested route: the parsed track, its derived geometry
// and the original file bytes kept byte-exact for download.
type File struct {
	Slug     string
	Name     string
	Raw      []byte
	Track    Track
	Geometry Geometry
}

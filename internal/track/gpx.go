package track

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
)

// ParseError marks a file whose content could not be decoded as GPX.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type gpxFile struct {
	XMLName xml.Name `xml:"gpx"`
	Trk     []gpxTrk `xml:"trk"`
}

type gpxTrk struct {
	Seg []gpxSeg `xml:"trkseg"`
}

type gpxSeg struct {
	Pt []gpxPt `xml:"trkpt"`
}

type gpxPt struct {
	Lat float64  `xml:"lat,attr"`
	Lon float64  `xml:"lon,attr"`
	Ele *float64 `xml:"ele"`
}

// Parse decodes GPX bytes into a Track whose slug is derived from the
// filename. Point order is file order.
func Parse(data []byte, filename string) (Track, error) {
	var g gpxFile
	if err := xml.Unmarshal(data, &g); err != nil {
		return Track{}, &ParseError{File: filename, Err: err}
	}

	t := Track{Slug: SlugFromFilename(filename)}
	for _, tr := range g.Trk {
		for _, seg := range tr.Seg {
			for _, p := range seg.Pt {
				pt := Point{Lng: p.Lon, Lat: p.Lat}
				if p.Ele != nil {
					pt.ElevationM = *p.Ele
					pt.HasElevation = true
				}
				t.Points = append(t.Points, pt)
			}
		}
	}
	return t, nil
}

// SlugFromFilename lowercases the filename and strips its extension.
// Collisions between files are the catalog builder's concern.
func SlugFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

package stream

import (
	"encoding/json"
	"log"

	"backend-trailmap/internal/maplayer"
	"backend-trailmap/internal/shared/geo"
	"backend-trailmap/internal/shared/geojson"
)

// command is one surface operation serialized for the connected map
// client.
type command struct {
	Op      string           `json:"op"`
	ID      string           `json:"id,omitempty"`
	Data    *geojson.Feature `json:"data,omitempty"`
	Layer   *maplayer.Layer  `json:"layer,omitempty"`
	Visible *bool            `json:"visible,omitempty"`
	Width   float64          `json:"width,omitempty"`
	Cursor  string           `json:"cursor,omitempty"`
	Bounds  *geo.Bounds      `json:"bounds,omitempty"`
	Padding int              `json:"padding,omitempty"`
}

// RemoteSurface implements maplayer.Surface by sending commands to a
// websocket client through the session's outbound channel.
type RemoteSurface struct {
	send chan<- []byte
}

func NewRemoteSurface(send chan<- []byte) *RemoteSurface {
	return &RemoteSurface{send: send}
}

func (s *RemoteSurface) emit(cmd command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	select {
	case s.send <- payload:
	default:
		log.Printf("stream: dropping %s command, client not keeping up", cmd.Op)
	}
	return nil
}

func (s *RemoteSurface) AddSource(id string, data geojson.Feature) error {
	return s.emit(command{Op: "add_source", ID: id, Data: &data})
}

func (s *RemoteSurface) AddLayer(layer maplayer.Layer) error {
	return s.emit(command{Op: "add_layer", Layer: &layer})
}

func (s *RemoteSurface) RemoveLayer(id string) error {
	return s.emit(command{Op: "remove_layer", ID: id})
}

func (s *RemoteSurface) RemoveSource(id string) error {
	return s.emit(command{Op: "remove_source", ID: id})
}

func (s *RemoteSurface) SetLayerVisibility(id string, visible bool) error {
	return s.emit(command{Op: "set_visibility", ID: id, Visible: &visible})
}

func (s *RemoteSurface) SetLineWidth(id string, width float64) error {
	return s.emit(command{Op: "set_line_width", ID: id, Width: width})
}

func (s *RemoteSurface) SetCursor(cursor string) error {
	return s.emit(command{Op: "set_cursor", Cursor: cursor})
}

func (s *RemoteSurface) FitBounds(b geo.Bounds, padding int) error {
	return s.emit(command{Op: "fit_bounds", Bounds: &b, Padding: padding})
}

func (s *RemoteSurface) ResetView() error {
	return s.emit(command{Op: "reset_view"})
}

package stream

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// clientMessage is what a connected map client may send: an external
// selection value change, or a pointer event on a route's fill layer.
type clientMessage struct {
	Type    string `json:"type"`
	Route   string `json:"route"`
	Entered bool   `json:"entered"`
}

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		sess := hub.Register()

		done := make(chan struct{})
		go func() {
			for msg := range sess.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		// The connection itself is the map-ready event: register
		// layers, then apply the selection value carried in the query
		// string.
		if err := sess.Manager.Register(NewRemoteSurface(sess.Send)); err != nil {
			log.Printf("stream: layer registration failed: %v", err)
		} else {
			if err := sess.Machine.MarkReady(); err != nil {
				log.Printf("stream: initial selection failed: %v", err)
			}
			if v := c.Query("route"); v != "" {
				if err := sess.Select(v); err != nil {
					log.Printf("stream: query selection failed: %v", err)
				}
			}
		}

		for {
			var msg clientMessage
			if err := c.ReadJSON(&msg); err != nil {
				break
			}
			switch msg.Type {
			case "select":
				if err := sess.Select(msg.Route); err != nil {
					log.Printf("stream: selection failed: %v", err)
				}
			case "click":
				sess.Manager.HandleClick(msg.Route)
			case "hover":
				if err := sess.Manager.HandleHover(msg.Route, msg.Entered); err != nil {
					log.Printf("stream: hover failed: %v", err)
				}
			}
		}

		hub.Unregister(sess)
		<-done
	}))
}

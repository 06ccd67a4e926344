package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"backend-trailmap/internal/catalog"
	"backend-trailmap/internal/maplayer"
	"backend-trailmap/internal/selection"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const selectionChannel = "trailmap:selection"

// Hub tracks connected map sessions. Each session owns one layer
// manager and one selection machine built against the catalog current
// at connect time. Selection changes are published to redis when one is
// configured so other nodes can observe them.
type Hub struct {
	redis    *redis.Client
	holder   *catalog.Holder
	padding  int
	sessions map[string]*Session
	mu       sync.RWMutex
}

// Session is one connected map surface.
type Session struct {
	ID      string
	Send    chan []byte
	Manager *maplayer.Manager
	Machine *selection.Machine
	hub     *Hub
}

func NewHub(redisClient *redis.Client, holder *catalog.Holder, padding int) *Hub {
	return &Hub{
		redis:    redisClient,
		holder:   holder,
		padding:  padding,
		sessions: map[string]*Session{},
	}
}

// Register creates a session against the current catalog snapshot.
func (h *Hub) Register() *Session {
	c := h.holder.Get()
	manager := maplayer.NewManager(c)
	sess := &Session{
		ID:      uuid.NewString(),
		Send:    make(chan []byte, 256),
		Manager: manager,
		Machine: selection.NewMachine(c, manager, h.padding),
		hub:     h,
	}
	manager.OnSelect(func(slug string) {
		if err := sess.Select(slug); err != nil {
			log.Printf("stream: selection from click failed: %v", err)
		}
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sess.ID] = sess
	return sess
}

// Unregister tears the session's layers down while the surface channel
// is still open, then releases it.
func (h *Hub) Unregister(sess *Session) {
	sess.Manager.Teardown()
	sess.Machine.Reset()

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[sess.ID]; !ok {
		return
	}
	delete(h.sessions, sess.ID)
	close(sess.Send)
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Select applies an external selection value to the session and
// publishes the resulting state.
func (s *Session) Select(value string) error {
	if err := s.Machine.Apply(value); err != nil {
		return err
	}
	s.hub.publishSelection(s.ID, s.Machine.State())
	return nil
}

func (h *Hub) publishSelection(sessionID string, st selection.State) {
	if h.redis == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"session":  sessionID,
		"selected": st.Selected,
		"route":    st.Slug,
	})
	if err := h.redis.Publish(context.Background(), selectionChannel, payload).Err(); err != nil {
		log.Printf("redis publish error: %v", err)
	}
}

package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"deckstyle/internal/debug"
)

// sendTimeout bounds a single write so one stalled viewer cannot hold up a
// theme switch for the others.
const sendTimeout = 5 * time.Second

// viewer is one live-preview page. Writes are serialized by mu since
// gorilla connections allow a single concurrent writer.
type viewer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (v *viewer) send(msg Message) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sendLocked(msg)
}

func (v *viewer) sendLocked(msg Message) error {
	if err := v.conn.SetWriteDeadline(time.Now().Add(sendTimeout)); err != nil {
		return err
	}
	return v.conn.WriteJSON(msg)
}

// Hub fans theme switches out to every open live-preview page.
type Hub struct {
	mu      sync.RWMutex
	viewers map[*websocket.Conn]*viewer
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{viewers: make(map[*websocket.Conn]*viewer)}
}

// Join registers conn and sends it the theme returned by greeting. The
// viewer is registered before greeting runs and its writes are held until
// the greeting is sent, so a switch racing the join arrives after it.
func (h *Hub) Join(conn *websocket.Conn, greeting func() Message) error {
	v := &viewer{conn: conn}
	v.mu.Lock()
	defer v.mu.Unlock()

	h.mu.Lock()
	h.viewers[conn] = v
	h.mu.Unlock()

	if err := v.sendLocked(greeting()); err != nil {
		h.Leave(conn)
		return err
	}
	return nil
}

// Leave forgets conn. It does not close it.
func (h *Hub) Leave(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.viewers, conn)
}

// Len returns the number of open pages.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// Broadcast sends msg to every page and returns how many received it.
// A page whose write fails is dropped and closed; its read loop then exits.
func (h *Hub) Broadcast(msg Message) int {
	h.mu.RLock()
	viewers := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		viewers = append(viewers, v)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, v := range viewers {
		if err := v.send(msg); err != nil {
			debug.Logf("server: dropping live viewer %s: %v", v.conn.RemoteAddr(), err)
			h.Leave(v.conn)
			_ = v.conn.Close()
			continue
		}
		delivered++
	}
	return delivered
}

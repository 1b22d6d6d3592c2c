// Package broadcast fans a running anneal search's progress snapshots
// out to zero or more WebSocket subscribers. It is fed only through
// anneal.Config.ProgressHook; it never touches engine state directly,
// matching the one-way dependency boundary the rest of the CLI layer
// observes.
package broadcast

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coolforge/anneal"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub holds the live set of progress subscribers for one run.
type Hub struct {
	mu   sync.Mutex
	subs map[*websocket.Conn]struct{}
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a WebSocket and registers it as a
// subscriber until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.add(conn)
	defer h.remove(conn)

	// This socket is write-only from the server's perspective; block on
	// reads purely to detect client disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[c] = struct{}{}
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, c)
	c.Close()
}

// Broadcast writes p as JSON to every current subscriber; its signature
// matches anneal.Config.ProgressHook. A subscriber that fails to accept a
// write (slow or gone) is dropped rather than allowed to block the
// search loop indirectly through a slow hook call.
func (h *Hub) Broadcast(p anneal.Progress) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subs))
	for c := range h.subs {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteJSON(p); err != nil {
			h.remove(c)
		}
	}
}

// Count reports the current subscriber count, mostly useful for tests
// and diagnostics.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

package httpserver

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/imposera/remora-tracker/internal/bus"
	"github.com/imposera/remora-tracker/internal/tracker"
)

// SnapshotWS pushes every new snapshot to connected dashboard clients.
type SnapshotWS struct {
	bus      *bus.Bus
	engine   *tracker.Engine
	upgrader websocket.Upgrader
}

// NewSnapshotWS creates the WebSocket handler. origin "*" allows any client.
func NewSnapshotWS(b *bus.Bus, e *tracker.Engine, origin string) *SnapshotWS {
	return &SnapshotWS{
		bus:    b,
		engine: e,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return allowOrigin(r, origin) },
		},
	}
}

func allowOrigin(r *http.Request, origin string) bool {
	if origin == "*" {
		return true
	}
	return strings.EqualFold(r.Header.Get("Origin"), origin)
}

func (h *SnapshotWS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Seed the client with the latest snapshot so it renders immediately.
	if snap := h.engine.Latest(); snap != nil {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}

	ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

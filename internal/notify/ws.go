package notify

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size in bytes.
	maxMessageSize = 8192
)

// WSHandler upgrades HTTP requests to WebSocket listener connections.
type WSHandler struct {
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WebSocket handler attached to the hub.
func NewWSHandler(hub *Hub, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The relay carries no credentials and no private data.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles GET /ws.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := h.hub.Subscribe()
	h.logger.Debug("listener connected", "subscriber_id", sub.ID)

	go h.writePump(conn, sub)
	h.readPump(conn, sub)
}

// readPump reads client messages and relays them until the connection
// drops. It owns the connection's read side and its teardown.
func (h *WSHandler) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub.ID)
		conn.Close()
		h.logger.Debug("listener disconnected", "subscriber_id", sub.ID)
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("listener read error", "subscriber_id", sub.ID, "error", err)
			}
			return
		}
		h.hub.Relay(raw)
	}
}

// writePump forwards broadcasts to the peer and keeps the connection alive
// with pings.
func (h *WSHandler) writePump(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.Messages:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-sub.Done:
			return
		}
	}
}

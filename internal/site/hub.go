package site

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/sidenav/internal/logging"
)

const writeWait = 5 * time.Second

// reloadMessage is sent to live reload clients after every build.
type reloadMessage struct {
	Type    string `json:"type"`
	BuildID string `json:"build_id"`
}

// Hub tracks live reload websocket clients and tells them about new builds.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader
	allowAll bool

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	current string
	closed  bool
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithAllowAllOrigins accepts websocket upgrades from any origin, matching
// the server's allow_all_origins CORS setting.
func WithAllowAllOrigins(allow bool) HubOption {
	return func(h *Hub) { h.allowAll = allow }
}

// NewHub creates an empty Hub. Only localhost origins may connect unless
// WithAllowAllOrigins is set.
func NewHub(logger *zap.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		logger:  logging.OrNop(logger),
		clients: make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// checkOrigin applies the same origin rule as the server's CORS policy.
// Requests without an Origin header come from non-browser clients.
func (h *Hub) checkOrigin(r *http.Request) bool {
	if h.allowAll {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "http" {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return true
	}
	return false
}

// ServeHTTP upgrades the request to a websocket and keeps the client
// registered until it disconnects. New clients receive the current build id.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = struct{}{}
	if h.current != "" {
		h.send(conn, h.current)
	}
	h.mu.Unlock()

	defer h.unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", zap.Error(err))
			}
			return
		}
	}
}

// Broadcast records buildID as current and sends it to every client.
// Clients that cannot be written to are dropped.
func (h *Hub) Broadcast(buildID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = buildID
	for conn := range h.clients {
		h.send(conn, buildID)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, conn)
	}
}

// send writes one reload message. h.mu must be held.
func (h *Hub) send(conn *websocket.Conn, buildID string) {
	data, _ := json.Marshal(reloadMessage{Type: "reload", BuildID: buildID})
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Debug("websocket write", zap.Error(err))
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 1 << 10 // Viewers only send control frames
	sendBuffer     = 64
)

type client struct {
	id     string
	conn   *websocket.Conn
	format Format
	send   chan []byte
}

// Hub fans frames out to connected viewers. A viewer whose send buffer is
// full is dropped rather than stalling the simulation.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	latest   map[Format][]byte // last snapshot per format, sent on join
	closed   bool
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		latest:  make(map[Format][]byte),
		upgrader: websocket.Upgrader{
			// Kiosk displays are served from a different origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams frames until the viewer leaves.
// The encoding is chosen with ?format=json|msgpack.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		id:     uuid.NewString(),
		conn:   conn,
		format: format,
		send:   make(chan []byte, sendBuffer),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}
	h.logger.Info("viewer joined", "viewer", c.id, "remote", r.RemoteAddr, "format", format)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if b, ok := h.latest[c.format]; ok {
		c.send <- b
	}
	return true
}

// unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Broadcast encodes f once per format in use and queues it for every viewer.
func (h *Hub) Broadcast(f Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	encoded := make(map[Format][]byte, 2)
	encode := func(format Format) ([]byte, error) {
		if b, ok := encoded[format]; ok {
			return b, nil
		}
		b, err := Encode(f, format)
		if err != nil {
			return nil, err
		}
		encoded[format] = b
		return b, nil
	}

	if f.Type == FrameSnapshot {
		// Joining viewers get the latest snapshot in either format.
		for _, format := range []Format{FormatJSON, FormatMsgpack} {
			b, err := encode(format)
			if err != nil {
				return err
			}
			h.latest[format] = b
		}
	}

	var dropped []*client
	for c := range h.clients {
		b, err := encode(c.format)
		if err != nil {
			return err
		}
		select {
		case c.send <- b:
		default:
			dropped = append(dropped, c)
		}
	}
	for _, c := range dropped {
		h.logger.Warn("dropping slow viewer", "viewer", c.id)
		h.removeLocked(c)
	}
	return nil
}

// Close disconnects every viewer and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// readPump discards viewer messages and keeps the read deadline fresh.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		h.logger.Info("viewer left", "viewer", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("viewer read error", "viewer", c.id, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	msgType := websocket.TextMessage
	if c.format == FormatMsgpack {
		msgType = websocket.BinaryMessage
	}

	for {
		select {
		case b, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(msgType, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

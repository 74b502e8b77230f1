package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// Websocket message types.
const (
	MessageOverlay = "overlay"
	MessagePing    = "ping"
	MessagePong    = "pong"
)

const (
	sendBuffer   = 64
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	maxReadBytes = 4096
)

// Envelope wraps every message pushed to websocket clients.
type Envelope struct {
	Type string    `json:"type"`
	TS   time.Time `json:"ts"`
	Data any       `json:"data,omitempty"`
}

// Hub fans overlays out to connected websocket clients. New clients receive
// the most recent overlay on connect.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]bool
	latest   []byte
	upgrader websocket.Upgrader
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// NewHub creates an empty hub.
func NewHub(m *metrics.Metrics, log *logger.Logger) *Hub {
	if m == nil {
		m = metrics.NewMetrics()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		metrics: m,
		logger:  log.Named("hub"),
	}
}

// Publish sends ov to every connected client. Clients whose buffer is full
// miss the message.
func (h *Hub) Publish(ov overlay.Overlay) error {
	data, err := json.Marshal(Envelope{Type: MessageOverlay, TS: time.Now().UTC(), Data: ov})
	if err != nil {
		return errors.Wrap(errors.ErrCodeServerFailed, "failed to encode overlay", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = data

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Dropping overlay for slow websocket client")
		}
	}

	return nil
}

// HandleWS upgrades the request and registers the client.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))

		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  h,
	}

	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)

	if h.latest != nil {
		c.send <- h.latest
	}
	h.mu.Unlock()

	h.metrics.WSClients.Inc()
	h.logger.Info("Websocket client connected", zap.Int("clients", count))

	go c.writePump()
	go c.readPump()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		h.metrics.WSClients.Dec()
	}
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}

	delete(h.clients, c)
	close(c.send)
	h.metrics.WSClients.Dec()
	h.logger.Info("Websocket client disconnected", zap.Int("clients", len(h.clients)))
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxReadBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var base struct {
			Type string `json:"type"`
		}

		if json.Unmarshal(msg, &base) != nil || base.Type != MessagePing {
			continue
		}

		pong, _ := json.Marshal(Envelope{Type: MessagePong, TS: time.Now().UTC()})

		c.hub.mu.RLock()
		if c.hub.clients[c] {
			select {
			case c.send <- pong:
			default:
			}
		}
		c.hub.mu.RUnlock()
	}
}

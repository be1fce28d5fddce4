package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/logger"
)

const (
	EventCartUpdated   = "cart.updated"
	EventCartDeleted   = "cart.deleted"
	EventCartRecovered = "cart.recovered"
	EventCartReminded  = "cart.reminded"

	ChannelAdminCarts = "admin:carts"

	outboundBuffer    = 16
	heartbeatInterval = 15 * time.Second
)

func SessionChannel(sessionID string) string { return "session:" + sessionID }

func UserChannel(userID uuid.UUID) string { return "user:" + userID.String() }

// Message is one event addressed to a channel.
type Message struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Data    any    `json:"data,omitempty"`
}

type Client struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan Message
	done     chan struct{}
	once     sync.Once
}

// Hub fans messages out to the clients subscribed in this process.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
	clients       map[*Client]bool
	closed        bool
	heartbeat     time.Duration
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		log:           log.With("component", "realtime.Hub"),
		subscriptions: make(map[string]map[*Client]bool),
		clients:       make(map[*Client]bool),
		heartbeat:     heartbeatInterval,
	}
}

// NewClient registers a client. After CloseAll the client comes back already
// closed, so its stream ends immediately.
func (h *Hub) NewClient() *Client {
	client := &Client{
		ID:       uuid.New(),
		Channels: make(map[string]bool),
		Outbound: make(chan Message, outboundBuffer),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	closed := h.closed
	if !closed {
		h.clients[client] = true
	}
	h.mu.Unlock()

	if closed {
		client.once.Do(func() { close(client.done) })
	}
	return client
}

func (h *Hub) Subscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	client.Channels[channel] = true
	clients, ok := h.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[client] = true
	h.log.Debug("[realtime] subscribed", "client_id", client.ID, "channel", channel)
}

func (h *Hub) Unsubscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(client.Channels, channel)
	h.detach(client, channel)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range client.Channels {
		h.detach(client, ch)
	}
	client.Channels = make(map[string]bool)
	delete(h.clients, client)
}

// detach expects h.mu to be held.
func (h *Hub) detach(client *Client, channel string) {
	if subs, ok := h.subscriptions[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

// Broadcast delivers msg to every local subscriber of msg.Channel. It never
// blocks: a client whose buffer is full misses the message.
func (h *Hub) Broadcast(msg Message) {
	if msg.Channel == "" {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subscriptions[msg.Channel] {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Warn("[realtime] dropping message, outbound buffer full", "client_id", c.ID, "channel", msg.Channel, "event", msg.Event)
		}
	}
}

// Subscribers returns the number of local clients on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel])
}

// ServeHTTP streams client's messages as server-sent events until the request
// context ends or the client is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *Client) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			payload, err := json.Marshal(msg.Data)
			if err != nil {
				h.log.Warn("[realtime] failed to marshal message", "error", err, "event", msg.Event)
				continue
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, payload)
			flusher.Flush()
		}
	}
}

// CloseClient unsubscribes client and ends its stream. Safe to call twice.
func (h *Hub) CloseClient(client *Client) {
	client.once.Do(func() {
		h.RemoveClient(client)
		close(client.done)
	})
}

// CloseAll ends every open stream and refuses new ones. main registers it
// with http.Server.RegisterOnShutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	h.closed = true
	open := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		open = append(open, c)
	}
	h.mu.Unlock()

	for _, c := range open {
		h.CloseClient(c)
	}
	h.log.Info("[realtime] closed all streams", "clients", len(open))
}

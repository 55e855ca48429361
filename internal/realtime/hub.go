package realtime

import (
	"encoding/json"
	"sync"
)

// Channels a browser can subscribe to.
const (
	ChannelTasks    = "tasks"
	ChannelCalendar = "calendar"
)

// ValidChannel reports whether name is a known channel.
func ValidChannel(name string) bool {
	return name == ChannelTasks || name == ChannelCalendar
}

// Client is one subscriber; the network connection lives in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event tells subscribers that their cached list is stale.
type Event struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Version int    `json:"version"`
}

// Hub fans invalidation events out to every subscriber of a channel.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[Client]struct{})}
}

func (h *Hub) Register(channel string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[Client]struct{})
	}
	h.channels[channel][client] = struct{}{}
}

// Unregister removes a client and drops the channel once it is empty.
func (h *Hub) Unregister(channel string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Subscribers counts the clients on a channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Broadcast sends a raw message to all clients of a channel and returns how many accepted it.
// Failed clients are left for their handler to clean up.
func (h *Hub) Broadcast(channel string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for c := range h.channels[channel] {
		if c.Send(message) {
			delivered++
		}
	}
	return delivered
}

// Publish encodes evt and broadcasts it.
func (h *Hub) Publish(channel string, evt Event) int {
	if evt.Version == 0 {
		evt.Version = 1
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		return 0
	}
	return h.Broadcast(channel, msg)
}

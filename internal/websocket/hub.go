package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Message is a change notification broadcast after every row-level mutation.
// It promises nothing beyond "something changed"; receivers refetch the list.
type Message struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int64  `json:"id,omitempty"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(entity, action string, id int64) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
	}
}

// Subscriber is an in-process listener on the hub, used by the list
// synchronizer. Its channel is buffered; when the buffer is full a message is
// dropped, which is safe because a refresh is already pending.
type Subscriber struct {
	ch chan Message
}

// Messages returns the subscriber's notification channel. The hub closes it
// on Unsubscribe.
func (s *Subscriber) Messages() <-chan Message {
	return s.ch
}

// Hub fans change notifications out to connected WebSocket clients and to
// in-process subscribers.
type Hub struct {
	mu          sync.RWMutex
	clients     map[*Client]struct{}
	subscribers map[*Subscriber]struct{}
	logger      *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]struct{}),
		subscribers: make(map[*Subscriber]struct{}),
		logger:      logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Subscribe registers an in-process subscriber.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan Message, sendBufferSize)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call more
// than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients and subscribers.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}

	for sub := range h.subscribers {
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

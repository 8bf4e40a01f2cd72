package websocket

import (
	"encoding/json"
	"sync"
	"time"
)

// StatusUpdate is pushed to every connected client when a payment status
// changes, so list views refresh without polling.
type StatusUpdate struct {
	TransactionID string     `json:"transaction_id"`
	Paid          bool       `json:"paid"`
	PaidAt        *time.Time `json:"paid_at"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) BroadcastStatus(update StatusUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
		}
	}
}

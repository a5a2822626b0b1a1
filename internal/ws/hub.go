package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket viewer connection with user context.
type Client struct {
	UserID    uint
	CompanyID uint
	Role      string
	Send      chan []byte
	Hub       *Hub // set so Close() can unregister
	mu        sync.Mutex
	closed    bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.Hub != nil {
		c.Hub.unregister(c)
	}
}

// trySend queues a message unless the client is closed or its buffer is full.
// Sharing c.mu with Close means a send can never hit a closed channel.
func (c *Client) trySend(msg []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- msg:
	default:
	}
}

// Hub maintains the set of active viewer connections, grouped by tenant so
// snapshots never cross company boundaries.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	// companyID -> clients
	byCompany map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		byCompany: make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Hub = h
	h.clients[c] = struct{}{}
	if h.byCompany[c.CompanyID] == nil {
		h.byCompany[c.CompanyID] = make(map[*Client]struct{})
	}
	h.byCompany[c.CompanyID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if m := h.byCompany[c.CompanyID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byCompany, c.CompanyID)
		}
	}
}

// Companies returns the tenant IDs that currently have at least one viewer.
func (h *Hub) Companies() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]uint, 0, len(h.byCompany))
	for id := range h.byCompany {
		ids = append(ids, id)
	}
	return ids
}

func (h *Hub) BroadcastToCompany(companyID uint, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	m := h.byCompany[companyID]
	if m == nil {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

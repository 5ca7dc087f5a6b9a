package websocket

import (
	"context"
	"sync/atomic"

	"github.com/satriahrh/gerch/utils/log"
	"github.com/satriahrh/gerch/utils/metrics"
)

// Hub tracks open sessions and closes them on shutdown.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx is done, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Add(1)
			metrics.ActiveSessions.Inc()
			log.WithCtx(client.ctx).Debug("websocket session opened")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.count.Add(-1)
				metrics.ActiveSessions.Dec()
				client.Close()
				log.WithCtx(client.ctx).Debug("websocket session closed")
			}

		case <-ctx.Done():
			for client := range h.clients {
				client.Close()
				metrics.ActiveSessions.Dec()
			}
			h.clients = map[*Client]bool{}
			h.count.Store(0)
			return
		}
	}
}

// Register adds client; after shutdown the client is closed instead.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

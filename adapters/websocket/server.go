package websocket

import (
	"context"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

type Server struct {
	upgrader  websocket.Upgrader
	responder Responder
	window    int
	hub       *Hub
}

// NewServer accepts connections from allowedOrigins; "*" allows any origin.
func NewServer(responder Responder, historyWindow int, allowedOrigins []string) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		responder: responder,
		window:    historyWindow,
		hub:       NewHub(),
	}
}

// RunHub blocks until ctx is done.
func (s *Server) RunHub(ctx context.Context) {
	s.hub.Run(ctx)
}

func (s *Server) Hub() *Hub {
	return s.hub
}

package websocket

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Handler upgrades the request and serves one chat session until the
// connection closes.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	// The session outlives the upgrade request's context.
	client := NewClient(context.WithoutCancel(c.Request().Context()), conn, s.responder, s.window)
	s.hub.Register(client)
	defer s.hub.Unregister(client)

	client.Run()
	<-client.Context().Done()
	return nil
}

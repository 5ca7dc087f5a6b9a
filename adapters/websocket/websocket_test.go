package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/gerch/domain"
)

type echoResponder struct {
	mu        sync.Mutex
	histories [][]domain.ChatMessage
}

func (r *echoResponder) Respond(_ context.Context, msg domain.Message) domain.ResponseDraft {
	r.mu.Lock()
	r.histories = append(r.histories, msg.History)
	r.mu.Unlock()
	return domain.ResponseDraft{Text: "you said " + msg.Text, NeedsData: msg.Text == "search"}
}

func startServer(t *testing.T, responder Responder, origins []string) (*Server, string) {
	t.Helper()
	s := NewServer(responder, 4, origins)

	ctx, cancel := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		s.RunHub(ctx)
		close(hubDone)
	}()

	e := echo.New()
	e.GET("/api/ws", s.Handler)
	srv := httptest.NewServer(e)

	t.Cleanup(func() {
		cancel()
		<-hubDone
		srv.Close()
	})
	return s, "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestChatOverWebsocket(t *testing.T) {
	responder := &echoResponder{}
	s, url := startServer(t, responder, []string{"*"})
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(ChatRequest{Message: "hello"}))
	var reply ChatReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, replyChat, reply.Type)
	assert.Equal(t, "you said hello", reply.Response)
	assert.NotEmpty(t, reply.RequestID)

	require.NoError(t, conn.WriteJSON(ChatRequest{Message: "search"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.True(t, reply.NeedsSearch)

	responder.mu.Lock()
	defer responder.mu.Unlock()
	require.Len(t, responder.histories, 2)
	assert.Empty(t, responder.histories[0])
	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.UserRole, Content: "hello"},
		{Role: domain.AssistantRole, Content: "you said hello"},
	}, responder.histories[1])

	assert.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestMalformedFrame(t *testing.T) {
	_, url := startServer(t, &echoResponder{}, []string{"*"})
	conn := dial(t, url)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var reply ChatReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, replyError, reply.Type)
	assert.NotEmpty(t, reply.Error)
}

func TestSessionClosedUnregisters(t *testing.T) {
	s, url := startServer(t, &echoResponder{}, []string{"*"})
	conn := dial(t, url)

	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return s.Hub().ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOriginCheck(t *testing.T) {
	_, url := startServer(t, &echoResponder{}, []string{"https://gerch.example"})

	header := http.Header{"Origin": {"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	header = http.Header{"Origin": {"https://gerch.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	conn.Close()
}

package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 64 * 1024
	pendingLimit   = 8
)

// Responder answers one chat turn.
type Responder interface {
	Respond(ctx context.Context, msg domain.Message) domain.ResponseDraft
}

// ChatRequest is one inbound text frame. Without conversation_history the
// session's own history is used.
type ChatRequest struct {
	Message             string               `json:"message"`
	ConversationHistory []domain.ChatMessage `json:"conversation_history,omitempty"`
}

// ChatReply is one outbound text frame.
type ChatReply struct {
	Type        string                         `json:"type"`
	RequestID   string                         `json:"request_id,omitempty"`
	Response    string                         `json:"response,omitempty"`
	NeedsSearch bool                           `json:"needs_search"`
	SearchData  *domain.AggregatedSearchResult `json:"search_data,omitempty"`
	AudioURL    string                         `json:"audio_url,omitempty"`
	Error       string                         `json:"error,omitempty"`
}

const (
	replyChat  = "chat"
	replyError = "error"
)

// Client is one websocket chat session. Turns are answered in order by a
// single worker so the session history stays consistent.
type Client struct {
	conn      *websocket.Conn
	responder Responder
	window    int

	send     chan []byte
	incoming chan ChatRequest
	ctx      context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	closed  bool
	history []domain.ChatMessage
}

func NewClient(ctx context.Context, conn *websocket.Conn, responder Responder, historyWindow int) *Client {
	ctx = log.WithRequestID(ctx, "ws-"+uuid.NewString())
	ctx, cancel := context.WithCancel(ctx)
	return &Client{
		conn:      conn,
		responder: responder,
		window:    historyWindow,
		send:      make(chan []byte, 16),
		incoming:  make(chan ChatRequest, pendingLimit),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (c *Client) Run() {
	go c.readPump()
	go c.writePump()
	go c.work()
}

// Close is safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	c.conn.Close()
}

func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) Context() context.Context {
	return c.ctx
}

func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithCtx(c.ctx).Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var req ChatRequest
		if err := json.Unmarshal(data, &req); err != nil || strings.TrimSpace(req.Message) == "" {
			c.reply(ChatReply{Type: replyError, Error: "expected {\"message\": \"...\"}"})
			continue
		}

		select {
		case c.incoming <- req:
		default:
			c.reply(ChatReply{Type: replyError, Error: "too many pending messages"})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.WithCtx(c.ctx).Warn("websocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-c.ctx.Done():
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

func (c *Client) work() {
	for {
		select {
		case req := <-c.incoming:
			c.answer(req)
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) answer(req ChatRequest) {
	requestID := uuid.NewString()
	ctx := log.WithRequestID(c.ctx, requestID)

	history := req.ConversationHistory
	if history == nil {
		history = c.sessionHistory()
	}

	draft := c.responder.Respond(ctx, domain.Message{Text: req.Message, History: history})
	c.remember(req.Message, draft.Text)

	c.reply(ChatReply{
		Type:        replyChat,
		RequestID:   requestID,
		Response:    draft.Text,
		NeedsSearch: draft.NeedsData,
		SearchData:  draft.Payload,
		AudioURL:    draft.AudioURL,
	})
}

func (c *Client) sessionHistory() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ChatMessage(nil), c.history...)
}

func (c *Client) remember(user, assistant string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history,
		domain.ChatMessage{Role: domain.UserRole, Content: user},
		domain.ChatMessage{Role: domain.AssistantRole, Content: assistant})
	if c.window > 0 && len(c.history) > c.window {
		c.history = append([]domain.ChatMessage(nil), c.history[len(c.history)-c.window:]...)
	}
}

// reply queues a frame; it gives up when the session is gone.
func (c *Client) reply(r ChatReply) {
	data, err := json.Marshal(r)
	if err != nil {
		log.WithCtx(c.ctx).Error("encoding websocket reply", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	case <-c.ctx.Done():
	}
}

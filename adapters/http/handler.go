package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/gerch/domain"
	"github.com/satriahrh/gerch/utils/log"
)

const (
	// MaxAudioBytes bounds an uploaded voice clip (about a minute of 16kHz LINEAR16).
	MaxAudioBytes = 10 * 1024 * 1024

	serviceName = "gerch-api"
)

// ChatService is the use case behind the API.
type ChatService interface {
	Respond(ctx context.Context, msg domain.Message) domain.ResponseDraft
	Search(ctx context.Context, query string, limit int) domain.AggregatedSearchResult
	Ask(ctx context.Context, question string) (string, error)
}

type Handler struct {
	chat        ChatService
	transcriber domain.Transcriber
	audio       domain.AudioStore
}

// NewHandler builds the API handler. transcriber and audio may be nil, which
// disables the voice and audio endpoints.
func NewHandler(chat ChatService, transcriber domain.Transcriber, audio domain.AudioStore) *Handler {
	return &Handler{chat: chat, transcriber: transcriber, audio: audio}
}

type ChatRequest struct {
	Message             string               `json:"message"`
	ConversationHistory []domain.ChatMessage `json:"conversation_history"`
}

type ChatResponse struct {
	Response    string                         `json:"response"`
	NeedsSearch bool                           `json:"needs_search"`
	SearchData  *domain.AggregatedSearchResult `json:"search_data,omitempty"`
	AudioURL    string                         `json:"audio_url,omitempty"`
	Transcript  string                         `json:"transcript,omitempty"`
}

type SearchRequest struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Register mounts the API routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/", h.Root)
	g.GET("/health", h.Health)
	g.POST("/chat", h.Chat)
	g.POST("/chat/voice", h.Voice)
	g.POST("/search", h.Search)
	g.POST("/ask", h.Ask)
	g.GET("/audio/:key", h.Audio)
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Gerch API is running",
		"status":  "healthy",
	})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   serviceName,
	})
}

func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	draft := h.chat.Respond(c.Request().Context(), domain.Message{
		Text:    req.Message,
		History: req.ConversationHistory,
	})
	return c.JSON(http.StatusOK, toChatResponse(draft))
}

func toChatResponse(draft domain.ResponseDraft) ChatResponse {
	return ChatResponse{
		Response:    draft.Text,
		NeedsSearch: draft.NeedsData,
		SearchData:  draft.Payload,
		AudioURL:    draft.AudioURL,
	}
}

func (h *Handler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	return c.JSON(http.StatusOK, h.chat.Search(c.Request().Context(), req.Query, req.NumResults))
}

func (h *Handler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Question) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}

	ctx := c.Request().Context()
	answer, err := h.chat.Ask(ctx, req.Question)
	if err != nil {
		log.WithCtx(ctx).Error("ask failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "failed to answer question")
	}
	return c.JSON(http.StatusOK, AskResponse{Answer: answer, Sources: []string{}})
}

// Voice transcribes an uploaded clip and answers it like a chat message.
func (h *Handler) Voice(c echo.Context) error {
	if h.transcriber == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "voice input is not configured")
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "audio/") && !strings.HasPrefix(contentType, echo.MIMEOctetStream) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "expected audio/* or application/octet-stream")
	}

	audio, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxAudioBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read audio")
	}
	if len(audio) > MaxAudioBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "audio clip too large")
	}
	if len(audio) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty audio body")
	}

	ctx := c.Request().Context()
	transcript, err := h.transcriber.Transcribe(ctx, audio)
	if err != nil {
		log.WithCtx(ctx).Error("transcription failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "failed to transcribe audio")
	}
	if strings.TrimSpace(transcript) == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no speech recognized")
	}

	resp := toChatResponse(h.chat.Respond(ctx, domain.Message{Text: transcript}))
	resp.Transcript = transcript
	return c.JSON(http.StatusOK, resp)
}

// Audio serves a synthesized clip from the audio store.
func (h *Handler) Audio(c echo.Context) error {
	if h.audio == nil {
		return echo.NewHTTPError(http.StatusNotFound, "audio is not stored on this server")
	}

	data, err := h.audio.Get(c.Request().Context(), c.Param("key"))
	if errors.Is(err, domain.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "audio not found or expired")
	}
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("loading audio", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load audio")
	}
	return c.Blob(http.StatusOK, "audio/mpeg", data)
}

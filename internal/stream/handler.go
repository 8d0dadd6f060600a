// Package stream exposes the session coordinator over a websocket, so a
// client can hold one connection for the whole start/push/end conversation
// instead of issuing per-chunk HTTP requests.
package stream

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/stt-sidecar/internal/session"
	"github.com/eleven-am/stt-sidecar/internal/shared"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 8 * 1024 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ClientMessage is one inbound frame: an audio chunk or an end marker.
// Samples is base64 little-endian float32 PCM, validated downstream so a
// corrupt chunk yields an error frame instead of tearing down the session.
type ClientMessage struct {
	Type       string `json:"type"`
	Samples    string `json:"samples,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
}

// ServerMessage is one outbound frame.
type ServerMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Text      string `json:"text,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Handler struct {
	coord  *session.Coordinator
	logger *slog.Logger
}

func NewHandler(coord *session.Coordinator, logger *slog.Logger) *Handler {
	return &Handler{
		coord:  coord,
		logger: logger.With("component", "stream"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/stream", h.HandleConnection)
}

// HandleConnection godoc
// @Summary      Streaming transcription over websocket
// @Description  Opens a session on connect; "audio" frames yield "partial" replies, an "end" frame yields the "final" transcript
// @Tags         asr
// @Router       /asr/stream [get]
func (h *Handler) HandleConnection(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return err
	}
	defer ws.Close()
	ws.SetReadLimit(maxMessageSize)

	ctx := c.Request().Context()

	id, err := h.coord.Start(ctx)
	if err != nil {
		h.send(ws, ServerMessage{Type: "error", Code: "engine_failure", Message: "failed to create session"})
		return nil
	}
	h.logger.Info("stream opened", "session_id", id)

	// The session must not leak if the socket drops before an end frame.
	ended := false
	defer func() {
		if !ended {
			if _, err := h.coord.End(ctx, id); err != nil && !errors.Is(err, shared.ErrNotFound) {
				h.logger.Warn("cleanup end failed", "session_id", id, "error", err)
			}
		}
	}()

	if err := h.send(ws, ServerMessage{Type: "session.started", SessionID: id}); err != nil {
		return nil
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			h.logger.Info("stream closed", "session_id", id, "error", err)
			return nil
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(ws, ServerMessage{Type: "error", Code: "invalid_payload", Message: err.Error()})
			continue
		}

		switch msg.Type {
		case "audio":
			res, err := h.coord.Push(ctx, id, msg.Samples, msg.SampleRate)
			if err != nil {
				h.send(ws, h.errorMessage(err))
				if !errors.Is(err, shared.ErrInvalidPayload) {
					return nil
				}
				continue
			}
			if err := h.send(ws, ServerMessage{Type: "partial", Text: res.Text, LatencyMs: res.Latency.Milliseconds()}); err != nil {
				return nil
			}

		case "end":
			text, err := h.coord.End(ctx, id)
			ended = true
			if err != nil {
				h.send(ws, h.errorMessage(err))
				return nil
			}
			h.send(ws, ServerMessage{Type: "final", Text: text})
			return nil

		default:
			h.send(ws, ServerMessage{Type: "error", Code: "unknown_type", Message: "unknown message type: " + msg.Type})
		}
	}
}

func (h *Handler) send(ws *websocket.Conn, msg ServerMessage) error {
	ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteJSON(msg)
}

func (h *Handler) errorMessage(err error) ServerMessage {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return ServerMessage{Type: "error", Code: "session_not_found", Message: "session not found"}
	case errors.Is(err, shared.ErrInvalidPayload):
		return ServerMessage{Type: "error", Code: "invalid_payload", Message: err.Error()}
	default:
		return ServerMessage{Type: "error", Code: "engine_failure", Message: "decode failed"}
	}
}

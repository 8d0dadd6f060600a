package session

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eleven-am/stt-sidecar/internal/dto"
	"github.com/eleven-am/stt-sidecar/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	coord   *Coordinator
	metrics *MetricsStore
	logger  *slog.Logger
}

func NewHandler(coord *Coordinator, metrics *MetricsStore, logger *slog.Logger) *Handler {
	return &Handler{
		coord:   coord,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/start", h.Start)
	g.POST("/push", h.Push)
	g.POST("/end", h.End)
	if h.metrics != nil {
		g.GET("/metrics", h.GetMetrics)
	}
}

// Start godoc
// @Summary      Open a streaming session
// @Description  Creates a transcription session and returns its identifier
// @Tags         asr
// @Produce      json
// @Success      200  {object}  dto.StartResponse
// @Failure      500  {object}  shared.APIError
// @Router       /asr/start [post]
func (h *Handler) Start(c echo.Context) error {
	id, err := h.coord.Start(c.Request().Context())
	if err != nil {
		h.logger.Error("session start failed", "error", err)
		return shared.InternalError("engine_failure", "failed to create session")
	}

	return c.JSON(http.StatusOK, dto.StartResponse{SessionID: id})
}

// Push godoc
// @Summary      Push an audio chunk
// @Description  Feeds base64 little-endian float32 mono PCM into a session and returns the current partial hypothesis
// @Tags         asr
// @Accept       json
// @Produce      json
// @Param        request  body      dto.PushRequest  true  "Audio chunk"
// @Success      200      {object}  dto.PushResponse
// @Failure      400      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /asr/push [post]
func (h *Handler) Push(c echo.Context) error {
	var req dto.PushRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_payload", "invalid payload: "+err.Error())
	}

	res, err := h.coord.Push(c.Request().Context(), req.SessionID, req.Samples, req.SampleRate)
	if err != nil {
		return h.mapError(c, err, req.SessionID)
	}

	return c.JSON(http.StatusOK, dto.PushResponse{
		Text:      res.Text,
		LatencyMs: res.Latency.Milliseconds(),
	})
}

// End godoc
// @Summary      End a streaming session
// @Description  Finalizes the session and returns the final transcript
// @Tags         asr
// @Accept       json
// @Produce      json
// @Param        request  body      dto.EndRequest  true  "Session to end"
// @Success      200      {object}  dto.EndResponse
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /asr/end [post]
func (h *Handler) End(c echo.Context) error {
	var req dto.EndRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_payload", "invalid payload: "+err.Error())
	}

	text, err := h.coord.End(c.Request().Context(), req.SessionID)
	if err != nil {
		return h.mapError(c, err, req.SessionID)
	}

	return c.JSON(http.StatusOK, dto.EndResponse{Text: text})
}

// GetMetrics godoc
// @Summary      Hourly usage metrics
// @Description  Returns per-hour session, utterance and latency counters
// @Tags         asr
// @Produce      json
// @Param        hours  query     int  false  "Window size in hours (default 24, max 168)"
// @Success      200    {object}  dto.MetricsListResponse
// @Failure      500    {object}  shared.APIError
// @Router       /asr/metrics [get]
func (h *Handler) GetMetrics(c echo.Context) error {
	hours := 24
	if s := c.QueryParam("hours"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 168 {
			hours = n
		}
	}

	metrics, err := h.metrics.GetMetrics(c.Request().Context(), hours)
	if err != nil {
		h.logger.Error("failed to get metrics", "error", err)
		return shared.InternalError("get_metrics_failed", "failed to get metrics")
	}

	response := make([]dto.MetricsResponse, len(metrics))
	for i, m := range metrics {
		response[i] = dto.MetricsResponse{
			Date:         m.Date,
			Hour:         m.Hour,
			Sessions:     m.Sessions,
			Utterances:   m.Utterances,
			AvgLatencyMs: m.AvgLatencyMs,
			ErrorCount:   m.ErrorCount,
		}
	}

	return c.JSON(http.StatusOK, dto.MetricsListResponse{
		Hours:   hours,
		Metrics: response,
	})
}

func (h *Handler) mapError(c echo.Context, err error, sessionID string) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return shared.NotFound("session_not_found", "session not found")
	case errors.Is(err, shared.ErrInvalidPayload):
		return shared.BadRequest("invalid_payload", "invalid base64/payload: "+err.Error())
	default:
		h.logger.Error("engine failure", "session_id", sessionID, "error", err)
		return shared.InternalError("engine_failure", "decode failed")
	}
}

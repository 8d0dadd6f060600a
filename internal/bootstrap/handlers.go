package bootstrap

import (
	"log/slog"
	"os"

	"github.com/eleven-am/stt-sidecar/internal/auth"
	"github.com/eleven-am/stt-sidecar/internal/session"
	"github.com/eleven-am/stt-sidecar/internal/stream"
	"github.com/eleven-am/stt-sidecar/internal/transcript"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideArchiver(store *transcript.Store) session.TranscriptArchiver {
	if store == nil {
		return nil
	}
	return store
}

func ProvideSessionHandler(coord *session.Coordinator, metrics *session.MetricsStore, logger *slog.Logger) *session.Handler {
	return session.NewHandler(coord, metrics, logger.With("handler", "session"))
}

func ProvideStreamHandler(coord *session.Coordinator, logger *slog.Logger) *stream.Handler {
	return stream.NewHandler(coord, logger)
}

type HandlerParams struct {
	fx.In

	SessionHandler *session.Handler
	StreamHandler  *stream.Handler
	Config         *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1/asr", auth.BearerToken(params.Config.SidecarToken))
	params.SessionHandler.RegisterRoutes(api)
	params.StreamHandler.RegisterRoutes(api)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideArchiver,
		ProvideSessionHandler,
		ProvideStreamHandler,
	),
	fx.Invoke(RegisterRoutes),
)

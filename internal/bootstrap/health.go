package bootstrap

import (
	"github.com/eleven-am/stt-sidecar/internal/health"
	"github.com/eleven-am/stt-sidecar/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

func ProvideHealthHandler(
	coord *session.Coordinator,
	redisClient *redis.Client,
	db *gorm.DB,
) *health.Handler {
	return health.NewHandler(coord, redisClient, db, version)
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)

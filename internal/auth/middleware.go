package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/eleven-am/stt-sidecar/internal/shared"
	"github.com/labstack/echo/v4"
)

// BearerToken guards a route group with a single static token. An empty
// token disables the check, which is the default for trusted-network
// deployments where the sidecar sits behind the main backend.
func BearerToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			presented, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return shared.Unauthorized("unauthorized", "missing bearer token")
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				return shared.Unauthorized("unauthorized", "invalid token")
			}
			return next(c)
		}
	}
}

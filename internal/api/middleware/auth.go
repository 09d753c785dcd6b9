package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chckin-noodle/auth-service/internal/api/metrics"
	"github.com/chckin-noodle/auth-service/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxAccountID = "account_id"
	CtxUsername  = "username"
	CtxRole      = "role"
)

// Auth extracts the bearer token from the Authorization header, verifies it
// through the token service, and injects the claims into the request context.
// Missing, malformed, expired, and tampered tokens all yield 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(CtxAccountID, claims.AccountID)
			c.Set(CtxUsername, claims.Username)
			c.Set(CtxRole, string(claims.Role))

			return next(c)
		}
	}
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chckin-noodle/auth-service/internal/core/domain"
	"github.com/chckin-noodle/auth-service/internal/core/ports"
)

// RequireAdmin gates privileged routes on the admin role. The role is
// re-resolved on every request rather than read from the token claims, so a
// demoted account loses access immediately even while its old token is still
// within TTL. Wire it with the primary store repository, not a cache:
// authorization must hold even when a cache is unavailable or behind.
func RequireAdmin(repo ports.AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID, _ := c.Get(CtxAccountID).(string)
			if accountID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			account, err := repo.FindByID(c.Request().Context(), accountID)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
				}
				return err
			}

			if !account.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}

			return next(c)
		}
	}
}

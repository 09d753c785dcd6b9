package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chckin-noodle/auth-service/internal/api/middleware"
)

// ctxAccountID extracts the account id injected by the Auth middleware and
// fast-fails with 401 when it is absent (presence proves the middleware ran).
func ctxAccountID(c echo.Context) (string, error) {
	accountID, _ := c.Get(middleware.CtxAccountID).(string)
	if accountID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, nil
}

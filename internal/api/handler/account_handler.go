package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chckin-noodle/auth-service/internal/api/metrics"
	"github.com/chckin-noodle/auth-service/internal/core/domain"
	"github.com/chckin-noodle/auth-service/internal/core/ports"
)

// AccountHandler serves the admin-gated account management routes. Routes
// using it are wired behind the Auth and RequireAdmin middleware.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// List returns the public projection of every account.
//
// @Summary      List all accounts
// @Tags         accounts
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer token"
// @Success      200  {object}  listAccountsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/users [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accounts.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAccountsResponse{Users: toAccountResponses(accounts)})
}

// UpdateRole replaces the target account's role.
//
// @Summary      Update an account's role
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string             true  "Bearer token"
// @Param        id             path      string             true  "Account id"
// @Param        body           body      updateRoleRequest  true  "New role"
// @Success      200  {object}  updateRoleResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/users/{id}/role [patch]
func (h *AccountHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	account, err := h.accounts.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			metrics.RoleUpdatesTotal.WithLabelValues("invalid_role").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "role must be one of: user, admin"})
		case errors.Is(err, domain.ErrAccountNotFound):
			metrics.RoleUpdatesTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: "account not found"})
		}
		metrics.RoleUpdatesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RoleUpdatesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, updateRoleResponse{User: toAccountResponse(account)})
}

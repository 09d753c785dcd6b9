package handler

import (
	"time"

	"github.com/chckin-noodle/auth-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Role is optional; unrecognized values fall back to the standard role.
	Role string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// --- Response types ---

// accountResponse is the public projection of an account: no password hash,
// ever. Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.
type accountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *accountResponse `json:"user,omitempty"`
}

type verifyResponse struct {
	Valid bool             `json:"valid"`
	User  *accountResponse `json:"user,omitempty"`
}

type listAccountsResponse struct {
	Users []accountResponse `json:"users"`
}

type updateRoleResponse struct {
	User *accountResponse `json:"user"`
}

func toAccountResponse(a *domain.Account) *accountResponse {
	if a == nil {
		return nil
	}
	return &accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

func toAccountResponses(accounts []domain.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, *toAccountResponse(&accounts[i]))
	}
	return out
}

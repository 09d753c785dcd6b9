package ports

import "github.com/chckin-noodle/auth-service/internal/core/domain"

// TokenService issues and verifies signed session tokens.
// Verify must check signature, structure, and expiry before returning any
// claim; a failure on any of those yields no claims at all.
type TokenService interface {
	Issue(account *domain.Account) (string, error)
	Verify(token string) (*domain.Claims, error)
}

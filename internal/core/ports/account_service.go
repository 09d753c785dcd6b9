package ports

import (
	"context"

	"github.com/chckin-noodle/auth-service/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
// Role is the caller-requested role; values outside the defined enum are
// normalized to the standard role rather than rejected.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AccountService implements the account directory flows: registration,
// login, session resolution, and the admin-gated account operations.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SetRole(ctx context.Context, id, role string) (*domain.Account, error)
}

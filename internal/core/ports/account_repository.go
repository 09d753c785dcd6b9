package ports

import (
	"context"

	"github.com/chckin-noodle/auth-service/internal/core/domain"
)

// AccountRepository defines the persistence contract for accounts.
// Create must enforce username and email uniqueness atomically: two
// concurrent creates with a colliding key may not both succeed.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
}

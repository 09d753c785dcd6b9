package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/chckin-noodle/auth-service/internal/core/domain"
	"github.com/chckin-noodle/auth-service/internal/core/ports"
)

// AccountService implements the account directory: registration, login,
// session resolution, and the admin-gated listing and role updates.
type AccountService struct {
	repo             ports.AccountRepository
	hasher           ports.PasswordHasher
	tokens           ports.TokenService
	allowAdminSignup bool
	logger           zerolog.Logger
}

func NewAccountService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	allowAdminSignup bool,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		repo:             repo,
		hasher:           hasher,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
		logger:           logger,
	}
}

// Register creates an account and returns a freshly issued token alongside it.
// The requested role is normalized: anything outside the defined enum becomes
// the standard role, and admin is honored only when admin signup is enabled.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.Account, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", nil, err
	}

	account := &domain.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         s.normalizeRole(input.Role),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().
		Str("account_id", created.ID).
		Str("username", created.Username).
		Str("role", string(created.Role)).
		Msg("account registered")

	return token, created, nil
}

// Login authenticates an email/password pair and issues a token. Unknown
// emails and wrong passwords fail with the same error so callers cannot
// enumerate registered addresses.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.logger.Debug().Str("account_id", account.ID).Msg("password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("login succeeded")
	return token, account, nil
}

// GetAccount resolves an account by id. Session verification uses this to
// reflect the account's current state rather than the token's claims.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// ListAccounts returns every account's public projection.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.FindAll(ctx)
}

// SetRole replaces the target account's role. The role value is validated
// against the enum before the store is touched.
func (s *AccountService) SetRole(ctx context.Context, id, role string) (*domain.Account, error) {
	newRole := domain.Role(role)
	if !newRole.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.repo.UpdateRole(ctx, id, newRole)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("account_id", updated.ID).
		Str("role", string(updated.Role)).
		Msg("role updated")

	return updated, nil
}

// normalizeRole maps a requested role to one the service will grant.
// Invalid values downgrade silently to the standard role, as do admin
// requests when public admin signup is disabled.
func (s *AccountService) normalizeRole(requested string) domain.Role {
	role := domain.Role(requested)
	if !role.IsValid() {
		return domain.RoleUser
	}
	if role == domain.RoleAdmin && !s.allowAdminSignup {
		return domain.RoleUser
	}
	return role
}

package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chckin-noodle/auth-service/internal/core/domain"
	"github.com/chckin-noodle/auth-service/internal/core/ports"
)

const accountTTL = 5 * time.Minute

// cachedAccount is the cache wire shape: a hash-free projection. No FindByID
// consumer needs the password hash (logins verify through the uncached
// FindByEmail), so credential material never reaches the cache store.
type cachedAccount struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// CachedAccountRepository decorates an AccountRepository with a read-through
// Redis cache on FindByID, the lookup every verified request performs. The
// cache fails safe: any Redis error behaves like a miss and the store is
// consulted. UpdateRole writes the fresh document through, and read-through
// fills use SET NX, so a fill racing an update can never put the old role
// back. Worst case, if Redis rejects both the refresh and the fallback
// delete, the old entry survives no longer than its TTL.
type CachedAccountRepository struct {
	inner  ports.AccountRepository
	client *redis.Client
	log    zerolog.Logger
}

func NewCachedAccountRepository(inner ports.AccountRepository, client *redis.Client, log zerolog.Logger) *CachedAccountRepository {
	return &CachedAccountRepository{inner: inner, client: client, log: log}
}

func (r *CachedAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	return r.inner.Create(ctx, account)
}

// FindByEmail always hits the store: logins must verify against the current hash.
func (r *CachedAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.inner.FindByEmail(ctx, email)
}

func (r *CachedAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if cached := r.get(ctx, id); cached != nil {
		return cached, nil
	}

	account, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(ctx, account)
	return account, nil
}

func (r *CachedAccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	return r.inner.FindAll(ctx)
}

func (r *CachedAccountRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error) {
	account, err := r.inner.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	// Write through instead of deleting: a plain invalidation races with an
	// in-flight read-through fill, which could reinstate the old role for a
	// full TTL. The fill uses SET NX and can never overwrite this entry.
	if err := r.writeThrough(ctx, account); err != nil {
		r.log.Warn().Err(err).Str("account_id", id).Msg("account cache refresh failed")
		if err := r.client.Del(ctx, accountKey(id)).Err(); err != nil {
			r.log.Warn().Err(err).Str("account_id", id).Msg("account cache invalidation failed")
		}
	}

	return account, nil
}

func (r *CachedAccountRepository) get(ctx context.Context, id string) *domain.Account {
	raw, err := r.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Debug().Err(err).Msg("account cache read failed")
		}
		return nil
	}

	var ca cachedAccount
	if err := json.Unmarshal(raw, &ca); err != nil {
		return nil
	}
	return &domain.Account{
		ID:        ca.ID,
		Username:  ca.Username,
		Email:     ca.Email,
		Role:      ca.Role,
		CreatedAt: ca.CreatedAt,
	}
}

// set fills the cache on a read-through miss. SET NX keeps a fill that lost
// a race against UpdateRole from clobbering the fresher entry.
func (r *CachedAccountRepository) set(ctx context.Context, account *domain.Account) {
	raw, err := marshalAccount(account)
	if err != nil {
		return
	}
	if err := r.client.SetNX(ctx, accountKey(account.ID), raw, accountTTL).Err(); err != nil {
		r.log.Debug().Err(err).Msg("account cache write failed")
	}
}

func (r *CachedAccountRepository) writeThrough(ctx context.Context, account *domain.Account) error {
	raw, err := marshalAccount(account)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, accountKey(account.ID), raw, accountTTL).Err()
}

func marshalAccount(account *domain.Account) ([]byte, error) {
	return json.Marshal(cachedAccount{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	})
}

func accountKey(id string) string {
	return "account:" + id
}

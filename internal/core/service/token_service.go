package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chckin-noodle/auth-service/internal/core/domain"
)

// tokenClaims is the wire shape of the JWT payload.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// JWTTokenService issues and verifies HS256-signed JWTs carrying the account
// identity claims. The signing secret is injected at construction and is
// process-wide: rotating it (restart with a new JWT_SECRET) invalidates every
// previously issued token.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenService builds a token service with the given secret and TTL.
// A non-positive TTL falls back to 24 hours.
func NewJWTTokenService(secret string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the account id, username, role, issued-at,
// and an expiry of issued-at + TTL.
func (s *JWTTokenService) Issue(account *domain.Account) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: account.Username,
		Role:     string(account.Role),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token string. Signature, structure, and
// expiry are all checked before any claim is returned; every failure mode
// collapses to domain.ErrInvalidToken.
func (s *JWTTokenService) Verify(token string) (*domain.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.Claims{
		AccountID: claims.Subject,
		Username:  claims.Username,
		Role:      domain.Role(claims.Role),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

package domain

import (
	"errors"
	"time"
)

// Role is the privilege tier of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidToken = errors.New("invalid token")

// Account models a registered identity.
// PasswordHash is excluded from every JSON rendering; read paths expose
// only the public projection.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the account currently holds the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Claims are the identity facts embedded in a signed session token.
// They reflect the account at issuance time; privileged checks must
// re-resolve the current role from the store rather than trust Role here.
type Claims struct {
	AccountID string
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

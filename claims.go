package commerce

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the structured JWT claims carried by access tokens
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Role() string
	AccountStatus() AccountStatus
	HasRole(role string) bool
	IsAdmin() bool
	IsSuspended() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string        `json:"uid,omitempty"`
	UserEmail string        `json:"email,omitempty"`
	UserRole  string        `json:"role,omitempty"`
	Status    AccountStatus `json:"status,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the account email
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Role returns the global role
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// AccountStatus returns the account status captured at issue time. The
// value can be stale: the resolver does not re-read the account record.
func (c *JWTClaims) AccountStatus() AccountStatus {
	if c.Status == "" {
		return AccountStatusActive
	}
	return c.Status
}

// HasRole checks if the user has a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// IsAdmin checks if the user carries the admin role
func (c *JWTClaims) IsAdmin() bool {
	return c.UserRole == RoleAdmin
}

// IsSuspended checks the status captured at issue time
func (c *JWTClaims) IsSuspended() bool {
	return c.AccountStatus() == AccountStatusSuspended
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// RefreshClaims is the minimal claim set carried by refresh tokens.
// Refresh tokens never carry role or status.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

// UserID returns the user ID
func (c *RefreshClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

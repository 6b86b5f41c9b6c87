package commerce

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is a regular storefront account
	RoleUser UserRole = "user"
	// RoleAdmin moderates accounts and the catalog
	RoleAdmin UserRole = "admin"
)

// AccountStatus is the account lifecycle status
type AccountStatus = string

const (
	// AccountStatusActive accounts can sign in and use the API
	AccountStatusActive AccountStatus = "active"
	// AccountStatusSuspended accounts are rejected on every request
	AccountStatusSuspended AccountStatus = "suspended"
)

// ProductStatus is the catalog approval status
type ProductStatus = string

const (
	// ProductStatusPending is the status every product is created with
	ProductStatusPending ProductStatus = "pending"
	// ProductStatusApproved products show up in public listings
	ProductStatusApproved ProductStatus = "approved"
	// ProductStatusDisapproved products were rejected by an admin
	ProductStatusDisapproved ProductStatus = "disapproved"
)

// Currency is the price currency code
type Currency = string

const (
	CurrencyNGN Currency = "NGN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string        `bun:"name,notnull" json:"name,omitempty"`
	Email         string        `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string        `bun:"password_hash" json:"-"`
	Status        AccountStatus `bun:"account_status,notnull" json:"account_status,omitempty"`
	Role          UserRole      `bun:"user_role,notnull" json:"user_role,omitempty"`
	RefreshToken  string        `bun:"refresh_token" json:"-"`
	SuspendedAt   *time.Time    `bun:"suspended_at,nullzero" json:"suspended_at,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time    `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureStatus backfills the default status for records created before the
// column existed.
func (u *User) EnsureStatus() {
	if u.Status == "" {
		u.Status = AccountStatusActive
	}
}

// EnsureRole backfills the default role.
func (u *User) EnsureRole() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// IsSuspended reports whether the account is suspended.
func (u *User) IsSuspended() bool {
	return u.Status == AccountStatusSuspended
}

// Identity projects the persisted record into the claim carrier used to
// mint access tokens.
func (u *User) Identity() Identity {
	u.EnsureStatus()
	u.EnsureRole()
	return authIdentity{
		id:     u.ID.String(),
		email:  u.Email,
		role:   u.Role,
		status: u.Status,
	}
}

// Product is the catalog model. CreatedBy is immutable after creation.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string        `bun:"name,notnull" json:"name,omitempty"`
	Price         int64         `bun:"price,notnull" json:"price"`
	Quantity      int           `bun:"quantity,notnull" json:"quantity"`
	Description   string        `bun:"description" json:"description,omitempty"`
	Currency      Currency      `bun:"currency,notnull" json:"currency,omitempty"`
	Status        ProductStatus `bun:"status,notnull" json:"status,omitempty"`
	CreatedBy     uuid.UUID     `bun:"created_by,notnull,type:uuid" json:"created_by,omitempty"`
	Owner         *User         `bun:"rel:belongs-to,join:created_by=id" json:"owner,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureStatus backfills the default approval status.
func (p *Product) EnsureStatus() {
	if p.Status == "" {
		p.Status = ProductStatusPending
	}
}

// IsApproved reports whether the product is publicly listable.
func (p *Product) IsApproved() bool {
	return p.Status == ProductStatusApproved
}

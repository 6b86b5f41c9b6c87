package commerce_test

import (
	"context"
	"database/sql"

	commerce "github.com/goliatone/go-commerce"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUsers implements the subset of commerce.Users the lifecycle code
// touches. The embedded interface covers the rest; calling an
// un-mocked method panics.
type MockUsers struct {
	mock.Mock
	commerce.Users
}

func (m *MockUsers) UpdateStatus(ctx context.Context, id uuid.UUID, status commerce.AccountStatus, opts ...commerce.StatusUpdateOption) (*commerce.User, error) {
	args := m.Called(ctx, id, status, opts)
	var user *commerce.User
	if v := args.Get(0); v != nil {
		user = v.(*commerce.User)
	}
	return user, args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*commerce.User, error) {
	args := m.Called(ctx, email)
	var user *commerce.User
	if v := args.Get(0); v != nil {
		user = v.(*commerce.User)
	}
	return user, args.Error(1)
}

func (m *MockUsers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*commerce.User, error) {
	args := m.Called(ctx, tx, email)
	var user *commerce.User
	if v := args.Get(0); v != nil {
		user = v.(*commerce.User)
	}
	return user, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *commerce.User, criteria ...repository.InsertCriteria) (*commerce.User, error) {
	args := m.Called(ctx, tx, record, criteria)
	var user *commerce.User
	if v := args.Get(0); v != nil {
		user = v.(*commerce.User)
	}
	return user, args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*commerce.User, error) {
	args := m.Called(ctx, id, criteria)
	var user *commerce.User
	if v := args.Get(0); v != nil {
		user = v.(*commerce.User)
	}
	return user, args.Error(1)
}

func (m *MockUsers) Suspend(ctx context.Context, actor commerce.ActorRef, user *commerce.User, opts ...commerce.TransitionOption) (*commerce.User, error) {
	args := m.Called(ctx, actor, user, opts)
	var updated *commerce.User
	if v := args.Get(0); v != nil {
		updated = v.(*commerce.User)
	}
	return updated, args.Error(1)
}

func (m *MockUsers) Reinstate(ctx context.Context, actor commerce.ActorRef, user *commerce.User, opts ...commerce.TransitionOption) (*commerce.User, error) {
	args := m.Called(ctx, actor, user, opts)
	var updated *commerce.User
	if v := args.Get(0); v != nil {
		updated = v.(*commerce.User)
	}
	return updated, args.Error(1)
}

func (m *MockUsers) StoreRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	args := m.Called(ctx, id, refreshToken)
	return args.Error(0)
}

// MockProducts implements the subset of commerce.Products the approval
// workflow touches
type MockProducts struct {
	mock.Mock
	commerce.Products
}

func (m *MockProducts) UpdateStatus(ctx context.Context, id uuid.UUID, status commerce.ProductStatus) (*commerce.Product, error) {
	args := m.Called(ctx, id, status)
	var product *commerce.Product
	if v := args.Get(0); v != nil {
		product = v.(*commerce.Product)
	}
	return product, args.Error(1)
}

func (m *MockProducts) Create(ctx context.Context, record *commerce.Product, criteria ...repository.InsertCriteria) (*commerce.Product, error) {
	args := m.Called(ctx, record, criteria)
	var product *commerce.Product
	if v := args.Get(0); v != nil {
		product = v.(*commerce.Product)
	}
	return product, args.Error(1)
}

func (m *MockProducts) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*commerce.Product, error) {
	args := m.Called(ctx, id, criteria)
	var product *commerce.Product
	if v := args.Get(0); v != nil {
		product = v.(*commerce.Product)
	}
	return product, args.Error(1)
}

func (m *MockProducts) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*commerce.Product, error) {
	args := m.Called(ctx, id, ownerID)
	var product *commerce.Product
	if v := args.Get(0); v != nil {
		product = v.(*commerce.Product)
	}
	return product, args.Error(1)
}

func (m *MockProducts) UpdateOwned(ctx context.Context, record *commerce.Product, ownerID uuid.UUID) (*commerce.Product, error) {
	args := m.Called(ctx, record, ownerID)
	var product *commerce.Product
	if v := args.Get(0); v != nil {
		product = v.(*commerce.Product)
	}
	return product, args.Error(1)
}

func (m *MockProducts) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockProducts) Approve(ctx context.Context, actor commerce.ActorRef, product *commerce.Product, opts ...commerce.TransitionOption) (*commerce.Product, error) {
	args := m.Called(ctx, actor, product, opts)
	var updated *commerce.Product
	if v := args.Get(0); v != nil {
		updated = v.(*commerce.Product)
	}
	return updated, args.Error(1)
}

func (m *MockProducts) Disapprove(ctx context.Context, actor commerce.ActorRef, product *commerce.Product, opts ...commerce.TransitionOption) (*commerce.Product, error) {
	args := m.Called(ctx, actor, product, opts)
	var updated *commerce.Product
	if v := args.Get(0); v != nil {
		updated = v.(*commerce.Product)
	}
	return updated, args.Error(1)
}

func (m *MockProducts) ListByStatus(ctx context.Context, status commerce.ProductStatus, page commerce.Pagination) ([]*commerce.Product, int, error) {
	args := m.Called(ctx, status, page)
	var items []*commerce.Product
	if v := args.Get(0); v != nil {
		items = v.([]*commerce.Product)
	}
	return items, args.Int(1), args.Error(2)
}

func (m *MockProducts) ListByOwner(ctx context.Context, ownerID uuid.UUID, page commerce.Pagination) ([]*commerce.Product, int, error) {
	args := m.Called(ctx, ownerID, page)
	var items []*commerce.Product
	if v := args.Get(0); v != nil {
		items = v.([]*commerce.Product)
	}
	return items, args.Int(1), args.Error(2)
}

// MockRepositoryManager implements commerce.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepositoryManager) MustValidate() {
	m.Called()
}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	args := m.Called(ctx, opts, f)
	return args.Error(0)
}

func (m *MockRepositoryManager) Users() commerce.Users {
	args := m.Called()
	return args.Get(0).(commerce.Users)
}

func (m *MockRepositoryManager) Products() commerce.Products {
	args := m.Called()
	return args.Get(0).(commerce.Products)
}

// MockTokenService implements commerce.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(identity commerce.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssueRefreshToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateAccess(tokenString string) (commerce.AuthClaims, error) {
	args := m.Called(tokenString)
	var claims commerce.AuthClaims
	if v := args.Get(0); v != nil {
		claims = v.(commerce.AuthClaims)
	}
	return claims, args.Error(1)
}

func (m *MockTokenService) ValidateRefresh(tokenString string) (*commerce.RefreshClaims, error) {
	args := m.Called(tokenString)
	var claims *commerce.RefreshClaims
	if v := args.Get(0); v != nil {
		claims = v.(*commerce.RefreshClaims)
	}
	return claims, args.Error(1)
}

// MockIdentityProvider implements commerce.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, email, password string) (commerce.Identity, error) {
	args := m.Called(ctx, email, password)
	var identity commerce.Identity
	if v := args.Get(0); v != nil {
		identity = v.(commerce.Identity)
	}
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByEmail(ctx context.Context, email string) (commerce.Identity, error) {
	args := m.Called(ctx, email)
	var identity commerce.Identity
	if v := args.Get(0); v != nil {
		identity = v.(commerce.Identity)
	}
	return identity, args.Error(1)
}

// MockRefreshTokenStore implements commerce.RefreshTokenStore
type MockRefreshTokenStore struct {
	mock.Mock
}

func (m *MockRefreshTokenStore) StoreRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error {
	args := m.Called(ctx, id, refreshToken)
	return args.Error(0)
}

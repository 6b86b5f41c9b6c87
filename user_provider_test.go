package commerce_test

import (
	"context"
	"errors"
	"testing"

	commerce "github.com/goliatone/go-commerce"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful verification", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		userID := uuid.New()
		passwordHash, _ := commerce.HashPassword("password123")
		user := &commerce.User{
			ID:           userID,
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: passwordHash,
			Role:         commerce.RoleAdmin,
			Status:       commerce.AccountStatusActive,
		}

		store.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())
		assert.Equal(t, "test@example.com", identity.Email())
		assert.Equal(t, commerce.RoleAdmin, identity.Role())
		assert.Equal(t, commerce.AccountStatusActive, identity.Status())

		store.AssertExpectations(t)
	})

	t.Run("Invalid password", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		passwordHash, _ := commerce.HashPassword("correct_password")
		user := &commerce.User{
			ID:           uuid.New(),
			Email:        "test@example.com",
			PasswordHash: passwordHash,
			Role:         commerce.RoleUser,
			Status:       commerce.AccountStatusActive,
		}

		store.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "wrong_password")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, commerce.ErrInvalidCredentials)

		store.AssertExpectations(t)
	})

	t.Run("User not found maps to invalid credentials", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		store.On("GetByEmail", ctx, "nonexistent@example.com").
			Return(nil, goerrors.New("record not found", goerrors.CategoryNotFound)).Once()

		identity, err := provider.VerifyIdentity(ctx, "nonexistent@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, commerce.ErrInvalidCredentials)

		store.AssertExpectations(t)
	})

	t.Run("Suspended account rejected after password check", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		passwordHash, _ := commerce.HashPassword("password123")
		user := &commerce.User{
			ID:           uuid.New(),
			Email:        "suspended@example.com",
			PasswordHash: passwordHash,
			Role:         commerce.RoleUser,
			Status:       commerce.AccountStatusSuspended,
		}

		store.On("GetByEmail", ctx, "suspended@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "suspended@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, commerce.ErrAccountSuspended)

		store.AssertExpectations(t)
	})

	t.Run("Suspended account with wrong password stays invalid credentials", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		passwordHash, _ := commerce.HashPassword("password123")
		user := &commerce.User{
			ID:           uuid.New(),
			Email:        "suspended@example.com",
			PasswordHash: passwordHash,
			Role:         commerce.RoleUser,
			Status:       commerce.AccountStatusSuspended,
		}

		store.On("GetByEmail", ctx, "suspended@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "suspended@example.com", "wrong_password")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, commerce.ErrInvalidCredentials)

		store.AssertExpectations(t)
	})

	t.Run("Storage failure surfaces as internal error", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		store.On("GetByEmail", ctx, "test@example.com").
			Return(nil, errors.New("connection refused")).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.NotErrorIs(t, err, commerce.ErrInvalidCredentials)

		store.AssertExpectations(t)
	})
}

func TestUserProviderFindIdentityByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("User found", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		userID := uuid.New()
		user := &commerce.User{
			ID:     userID,
			Email:  "test@example.com",
			Role:   commerce.RoleAdmin,
			Status: commerce.AccountStatusActive,
		}

		store.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.FindIdentityByEmail(ctx, "test@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())
		assert.Equal(t, "test@example.com", identity.Email())
		assert.Equal(t, commerce.RoleAdmin, identity.Role())

		store.AssertExpectations(t)
	})

	t.Run("User not found", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		store.On("GetByEmail", ctx, "nonexistent@example.com").
			Return(nil, goerrors.New("record not found", goerrors.CategoryNotFound)).Once()

		identity, err := provider.FindIdentityByEmail(ctx, "nonexistent@example.com")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, commerce.ErrIdentityNotFound)

		store.AssertExpectations(t)
	})

	t.Run("Invalid role", func(t *testing.T) {
		store := new(MockUsers)
		provider := commerce.NewUserProvider(store)

		user := &commerce.User{
			ID:     uuid.New(),
			Email:  "test@example.com",
			Role:   "invalid_role",
			Status: commerce.AccountStatusActive,
		}

		store.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.FindIdentityByEmail(ctx, "test@example.com")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.Contains(t, err.Error(), "unknown or invalid role")

		store.AssertExpectations(t)
	})
}

func TestUserProviderValidation(t *testing.T) {
	store := new(MockUsers)
	provider := commerce.NewUserProvider(store)

	for _, role := range []string{commerce.RoleAdmin, commerce.RoleUser} {
		t.Run("Valid role: "+role, func(t *testing.T) {
			user := &commerce.User{
				ID:    uuid.New(),
				Email: "test@example.com",
				Role:  role,
			}

			err := provider.Validator(user)
			assert.NoError(t, err)
		})
	}

	t.Run("Invalid role", func(t *testing.T) {
		user := &commerce.User{
			ID:    uuid.New(),
			Email: "test@example.com",
			Role:  "superuser",
		}

		err := provider.Validator(user)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown or invalid role")
	})

	t.Run("Custom validator", func(t *testing.T) {
		customErr := errors.New("custom validation error")
		provider.Validator = func(u *commerce.User) error {
			return customErr
		}

		user := &commerce.User{
			ID:    uuid.New(),
			Email: "test@example.com",
		}

		err := provider.Validator(user)
		assert.Error(t, err)
		assert.Equal(t, customErr, err)
	})
}

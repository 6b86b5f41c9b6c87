package commerce

import (
	"context"
	"reflect"

	"github.com/google/uuid"
)

// TokenPair is the result of a successful sign in
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenStore persists the latest refresh token issued to an account
type RefreshTokenStore interface {
	StoreRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
}

type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	tokenStore   RefreshTokenStore
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, cfg Config) *Auther {
	tokenService := NewTokenService(cfg, nil, defLogger{})

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService overrides the token service, mostly useful in tests.
func (s *Auther) WithTokenService(service TokenService) *Auther {
	if service != nil {
		s.tokenService = service
	}
	return s
}

// WithRefreshTokenStore configures where issued refresh tokens are persisted.
func (s *Auther) WithRefreshTokenStore(store RefreshTokenStore) *Auther {
	s.tokenStore = store
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies credentials and mints an access plus refresh token pair.
// The verified identity is returned alongside the pair so callers can echo
// the account back to the client. The refresh token is persisted against
// the account record when a store is configured.
func (s *Auther) Login(ctx context.Context, email, password string) (*TokenPair, Identity, error) {
	identity, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return nil, nil, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokenService.IssueAccessToken(identity)
	if err != nil {
		s.logger.Error("Login failed to issue access token", "error", err)
		return nil, nil, err
	}

	refreshToken, err := s.tokenService.IssueRefreshToken(identity.ID())
	if err != nil {
		s.logger.Error("Login failed to issue refresh token", "error", err)
		return nil, nil, err
	}

	if s.tokenStore != nil {
		id, err := uuid.Parse(identity.ID())
		if err != nil {
			s.logger.Error("Login identity has a non uuid id", "error", err)
			return nil, nil, ErrIdentityNotFound
		}
		if err := s.tokenStore.StoreRefreshToken(ctx, id, refreshToken); err != nil {
			s.logger.Error("Login failed to persist refresh token", "error", err)
			return nil, nil, err
		}
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, identity, nil
}

// IdentityFromEmail resolves an identity without checking credentials
func (s *Auther) IdentityFromEmail(ctx context.Context, email string) (Identity, error) {
	identity, err := s.provider.FindIdentityByEmail(ctx, email)
	if err != nil {
		s.logger.Error("IdentityFromEmail error", "error", err)
		return nil, err
	}

	return identity, nil
}

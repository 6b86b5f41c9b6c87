package identityware

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ErrMalformedCredential is returned when an Authorization header is present
// but does not carry a scheme-prefixed token.
var ErrMalformedCredential = errors.New("please provide a Bearer token", errors.CategoryAuth).
	WithTextCode("MALFORMED_CREDENTIAL").
	WithCode(errors.CodeUnauthorized)

// ErrAccountSuspended rejects tokens minted for an account that was
// suspended at issue time.
var ErrAccountSuspended = errors.New(
	"your account is suspended, kindly reach out to your administrator for instructions on reactivating your account",
	errors.CategoryAuth).
	WithTextCode("ACCOUNT_SUSPENDED").
	WithCode(errors.CodeBadRequest)

// TokenValidator validates access tokens without import cycles.
// This mirrors the TokenService.ValidateAccess method from the commerce package
type TokenValidator interface {
	ValidateAccess(tokenString string) (AuthClaims, error)
}

// AuthClaims interface for structured claims without import cycles
// This mirrors the AuthClaims interface from the commerce package
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Role() string
	HasRole(role string) bool
	IsAdmin() bool
	IsSuspended() bool
}

type Config struct {
	// Filter skips the resolver entirely when it returns true
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	ContextKey     string
	HeaderName     string
	AuthScheme     string
	// TokenValidator is required for token validation
	TokenValidator TokenValidator

	// ContextEnricher is an optional function to propagate claims to the standard
	// Go context. If provided, it will be called after successful token validation.
	ContextEnricher func(c context.Context, claims AuthClaims) context.Context
}

// New builds the identity resolver. The resolver is best effort: requests
// without an Authorization header pass through untouched, and access
// guards downstream decide whether an identity is required. A header that
// is present but unusable fails the request here.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			header := ctx.GetString(cfg.HeaderName, "")
			if header == "" {
				return ctx.Next()
			}

			raw, err := ExtractRawToken(header, cfg.AuthScheme)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			claims, err := cfg.TokenValidator.ValidateAccess(raw)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			if claims.IsSuspended() {
				return cfg.ErrorHandler(ctx, ErrAccountSuspended)
			}

			ctx.Locals(cfg.ContextKey, claims)

			// if a context enricher we use it to propagate claims to the standard context
			if cfg.ContextEnricher != nil {
				stdCtx := ctx.Context()
				stdCtxWithClaims := cfg.ContextEnricher(stdCtx, claims)
				ctx.SetContext(stdCtxWithClaims)
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// ExtractRawToken strips the auth scheme from the header value. The scheme
// match is case sensitive: "bearer x" and "Token x" are both malformed.
func ExtractRawToken(header, authScheme string) (string, error) {
	prefix := authScheme + " "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrMalformedCredential
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrMalformedCredential
	}

	return token, nil
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c router.Context, err error) error {
			return err
		}
	}

	if cfg.TokenValidator == nil {
		panic("COMMERCE: identity middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = router.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

package identityware_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"

	"github.com/goliatone/go-commerce/middleware/identityware"
)

type stubClaims struct {
	subject   string
	email     string
	role      string
	suspended bool
}

func (s stubClaims) Subject() string          { return s.subject }
func (s stubClaims) UserID() string           { return s.subject }
func (s stubClaims) Email() string            { return s.email }
func (s stubClaims) Role() string             { return s.role }
func (s stubClaims) HasRole(role string) bool { return s.role == role }
func (s stubClaims) IsAdmin() bool            { return s.role == "admin" }
func (s stubClaims) IsSuspended() bool        { return s.suspended }

type stubValidator struct {
	claims identityware.AuthClaims
	err    error
	seen   string
}

func (s *stubValidator) ValidateAccess(tokenString string) (identityware.AuthClaims, error) {
	s.seen = tokenString
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func noop(ctx router.Context) error { return nil }

func TestIdentityware_NoHeaderPassesThrough(t *testing.T) {
	validator := &stubValidator{claims: stubClaims{subject: "u1"}}
	middleware := identityware.New(identityware.Config{
		TokenValidator: validator,
	})

	ctx := router.NewMockContext()
	ctx.On("GetString", "Authorization", "").Return("")

	err := middleware(noop)(ctx)
	if err != nil {
		t.Fatalf("expected no error for anonymous request, got %v", err)
	}
	if !ctx.NextCalled {
		t.Error("expected Next() to be called for anonymous request")
	}
	if validator.seen != "" {
		t.Errorf("validator should not run without a header, saw %q", validator.seen)
	}
}

func TestIdentityware_ValidTokenAttachesClaims(t *testing.T) {
	claims := stubClaims{subject: "u1", email: "u1@example.com", role: "user"}
	validator := &stubValidator{claims: claims}
	middleware := identityware.New(identityware.Config{
		TokenValidator: validator,
	})

	ctx := router.NewMockContext()
	ctx.HeadersM["Authorization"] = "Bearer valid.token.here"
	ctx.On("GetString", "Authorization", "").Return("Bearer valid.token.here")
	ctx.On("Locals", "user", mock.Anything).Return(nil)

	err := middleware(noop)(ctx)
	if err != nil {
		t.Fatalf("expected no error for valid token, got %v", err)
	}
	if !ctx.NextCalled {
		t.Error("expected Next() to be called after successful resolution")
	}
	if validator.seen != "valid.token.here" {
		t.Errorf("expected raw token 'valid.token.here', got %q", validator.seen)
	}
}

func TestIdentityware_MalformedHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "wrong scheme", header: "Token abc123"},
		{name: "lowercase scheme", header: "bearer abc123"},
		{name: "scheme without token", header: "Bearer "},
		{name: "bare token without scheme", header: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &stubValidator{claims: stubClaims{subject: "u1"}}
			middleware := identityware.New(identityware.Config{
				TokenValidator: validator,
			})

			ctx := router.NewMockContext()
			ctx.HeadersM["Authorization"] = tt.header
			ctx.On("GetString", "Authorization", "").Return(tt.header)

			err := middleware(noop)(ctx)
			if err == nil {
				t.Fatal("expected error for malformed header, got nil")
			}
			if !errors.Is(err, identityware.ErrMalformedCredential) {
				t.Errorf("expected ErrMalformedCredential, got: %v", err)
			}
			if ctx.NextCalled {
				t.Error("malformed header should not reach Next()")
			}
		})
	}
}

func TestIdentityware_ValidatorErrorRejectsRequest(t *testing.T) {
	wantErr := errors.New("token has expired")
	validator := &stubValidator{err: wantErr}
	middleware := identityware.New(identityware.Config{
		TokenValidator: validator,
	})

	ctx := router.NewMockContext()
	ctx.HeadersM["Authorization"] = "Bearer expired.token"
	ctx.On("GetString", "Authorization", "").Return("Bearer expired.token")

	err := middleware(noop)(ctx)
	if err == nil {
		t.Fatal("expected error for invalid token, got nil")
	}
	if !strings.Contains(err.Error(), "token has expired") {
		t.Errorf("expected validator error to propagate, got: %v", err)
	}
	if ctx.NextCalled {
		t.Error("invalid token should not reach Next()")
	}
}

func TestIdentityware_SuspendedAccountRejected(t *testing.T) {
	validator := &stubValidator{claims: stubClaims{subject: "u1", suspended: true}}
	middleware := identityware.New(identityware.Config{
		TokenValidator: validator,
	})

	ctx := router.NewMockContext()
	ctx.HeadersM["Authorization"] = "Bearer suspended.token"
	ctx.On("GetString", "Authorization", "").Return("Bearer suspended.token")

	err := middleware(noop)(ctx)
	if err == nil {
		t.Fatal("expected error for suspended account, got nil")
	}
	if !errors.Is(err, identityware.ErrAccountSuspended) {
		t.Errorf("expected ErrAccountSuspended, got: %v", err)
	}
	if ctx.NextCalled {
		t.Error("suspended account should not reach Next()")
	}
}

func TestIdentityware_FilterSkipsResolution(t *testing.T) {
	validator := &stubValidator{claims: stubClaims{subject: "u1"}}
	middleware := identityware.New(identityware.Config{
		TokenValidator: validator,
		Filter: func(ctx router.Context) bool {
			return true
		},
	})

	ctx := router.NewMockContext()

	err := middleware(noop)(ctx)
	if err != nil {
		t.Fatalf("expected no error when filter skips, got %v", err)
	}
	if !ctx.NextCalled {
		t.Error("expected Next() to be called when filter skips")
	}
}

func TestIdentityware_CustomErrorHandler(t *testing.T) {
	handled := false
	validator := &stubValidator{err: errors.New("bad token")}
	middleware := identityware.New(identityware.Config{
		TokenValidator: validator,
		ErrorHandler: func(c router.Context, err error) error {
			handled = true
			return nil
		},
	})

	ctx := router.NewMockContext()
	ctx.HeadersM["Authorization"] = "Bearer whatever"
	ctx.On("GetString", "Authorization", "").Return("Bearer whatever")

	err := middleware(noop)(ctx)
	if err != nil {
		t.Fatalf("custom error handler swallowed the error, expected nil, got %v", err)
	}
	if !handled {
		t.Error("expected custom error handler to run")
	}
}

func TestExtractRawToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		scheme  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer token", header: "Bearer abc123", scheme: "Bearer", want: "abc123"},
		{name: "scheme is case sensitive", header: "bearer abc123", scheme: "Bearer", wantErr: true},
		{name: "missing scheme", header: "abc123", scheme: "Bearer", wantErr: true},
		{name: "empty token", header: "Bearer ", scheme: "Bearer", wantErr: true},
		{name: "whitespace token", header: "Bearer    ", scheme: "Bearer", wantErr: true},
		{name: "custom scheme", header: "Token abc123", scheme: "Token", want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := identityware.ExtractRawToken(tt.header, tt.scheme)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGetDefaultConfig_RequiresValidator(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when TokenValidator is missing")
		}
	}()

	identityware.GetDefaultConfig(identityware.Config{})
}

func TestGetDefaultConfig_Defaults(t *testing.T) {
	cfg := identityware.GetDefaultConfig(identityware.Config{
		TokenValidator: &stubValidator{},
	})

	if cfg.ContextKey != "user" {
		t.Errorf("expected default context key 'user', got %q", cfg.ContextKey)
	}
	if cfg.HeaderName != router.HeaderAuthorization {
		t.Errorf("expected default header %q, got %q", router.HeaderAuthorization, cfg.HeaderName)
	}
	if cfg.AuthScheme != "Bearer" {
		t.Errorf("expected default scheme 'Bearer', got %q", cfg.AuthScheme)
	}
	if cfg.SuccessHandler == nil {
		t.Error("expected a default success handler")
	}
	if cfg.ErrorHandler == nil {
		t.Error("expected a default error handler")
	}
}

package commerce

import (
	"github.com/goliatone/go-router"
)

// HasIdentity reports whether the resolver attached claims for this request
func HasIdentity(ctx router.Context, contextKey string) bool {
	_, ok := GetRouterClaims(ctx, contextKey)
	return ok
}

// RequiresIdentity rejects requests that reached the handler without a
// resolved identity. The resolver runs best effort, so this is the gate
// that actually turns a missing or bad token into a 401.
func RequiresIdentity(contextKey string) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if !HasIdentity(ctx, contextKey) {
				return ErrUnauthenticated
			}
			return hf(ctx)
		}
	}
}

// RequiresAdminRole rejects requests without a resolved identity, and
// rejects non admin identities with a 403. Role comes from the claims as
// issued, not from a fresh read of the account record.
func RequiresAdminRole(contextKey string) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			claims, ok := GetRouterClaims(ctx, contextKey)
			if !ok {
				return ErrUnauthenticated
			}
			if !claims.IsAdmin() {
				return ErrForbidden
			}
			return hf(ctx)
		}
	}
}

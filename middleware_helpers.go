package commerce

import (
	"context"

	"github.com/goliatone/go-commerce/middleware/identityware"
)

// ContextEnricherAdapter adapts identityware.AuthClaims to commerce.AuthClaims
// and stores claims in the standard context for downstream usage.
func ContextEnricherAdapter(c context.Context, claims identityware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}

// IdentityResolver builds the best effort resolver middleware from the
// shared auth configuration.
func IdentityResolver(cfg Config, validator TokenService) identityware.Config {
	return identityware.Config{
		TokenValidator:  accessValidatorAdapter{validator},
		ContextKey:      cfg.GetContextKey(),
		AuthScheme:      cfg.GetAuthScheme(),
		ContextEnricher: ContextEnricherAdapter,
	}
}

type accessValidatorAdapter struct {
	service TokenService
}

func (a accessValidatorAdapter) ValidateAccess(tokenString string) (identityware.AuthClaims, error) {
	claims, err := a.service.ValidateAccess(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

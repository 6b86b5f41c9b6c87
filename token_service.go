package commerce

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenServiceImpl implements the TokenService interface. Access and
// refresh tokens are signed with different keys so one kind never
// validates in the other's slot.
type TokenServiceImpl struct {
	accessKey         []byte
	refreshKey        []byte
	accessExpiration  int
	refreshExpiration int
	issuer            string
	audience          jwt.ClaimStrings
	logger            Logger
}

// NewTokenService creates a new TokenService instance. Expirations are
// expressed in hours; an expiration of 0 mints tokens that are already
// expired.
func NewTokenService(config Config, audience jwt.ClaimStrings, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		accessKey:         []byte(config.GetAccessSigningKey()),
		refreshKey:        []byte(config.GetRefreshSigningKey()),
		accessExpiration:  config.GetAccessTokenExpiration(),
		refreshExpiration: config.GetRefreshTokenExpiration(),
		issuer:            config.GetIssuer(),
		audience:          audience,
		logger:            logger,
	}
}

// IssueAccessToken creates a JWT access token carrying the identity's id,
// email, role, and account status at issue time
func (ts *TokenServiceImpl) IssueAccessToken(identity Identity) (string, error) {
	if identity == nil {
		return "", errors.New("identity must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.ID(),
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.accessExpiration) * time.Hour)),
			ID:        uuid.NewString(),
		},
		UID:       identity.ID(),
		UserEmail: identity.Email(),
		UserRole:  identity.Role(),
		Status:    identity.Status(),
	}

	return ts.sign(claims, ts.accessKey)
}

// IssueRefreshToken creates a JWT refresh token carrying only the user id
func (ts *TokenServiceImpl) IssueRefreshToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("userID must not be empty", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   userID,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.refreshExpiration) * time.Hour)),
			ID:        uuid.NewString(),
		},
		UID: userID,
	}

	return ts.sign(claims, ts.refreshKey)
}

func (ts *TokenServiceImpl) sign(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// ValidateAccess parses and validates an access token string, returning
// structured claims
func (ts *TokenServiceImpl) ValidateAccess(tokenString string) (AuthClaims, error) {
	token, err := ts.parse(tokenString, &JWTClaims{}, ts.accessKey)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}

// ValidateRefresh parses and validates a refresh token string
func (ts *TokenServiceImpl) ValidateRefresh(tokenString string) (*RefreshClaims, error) {
	token, err := ts.parse(tokenString, &RefreshClaims{}, ts.refreshKey)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate refresh claims")
	return nil, ErrTokenMalformed
}

func (ts *TokenServiceImpl) parse(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	return token, nil
}

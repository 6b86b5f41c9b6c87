package commerce

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrTokenExpired is returned when a token's exp claim is in the past.
var ErrTokenExpired = goerrors.New("token has expired", goerrors.CategoryAuth).
	WithTextCode("AUTH_TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures, tampered payloads, and tokens
// presented in the wrong slot (refresh where access is expected, etc).
var ErrTokenMalformed = goerrors.New("invalid token", goerrors.CategoryAuth).
	WithTextCode("AUTH_TOKEN_INVALID").
	WithCode(goerrors.CodeUnauthorized)

// ErrMalformedCredential is returned when an Authorization header exists but
// is not of the form "Bearer <token>".
var ErrMalformedCredential = goerrors.New("please provide a Bearer token", goerrors.CategoryAuth).
	WithTextCode("MALFORMED_CREDENTIAL").
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountSuspended rejects requests carrying claims for a suspended
// account, even when the token itself is valid and unexpired.
var ErrAccountSuspended = goerrors.New(
	"your account is suspended, kindly reach out to your administrator for instructions on reactivating your account",
	goerrors.CategoryAuth).
	WithTextCode("ACCOUNT_SUSPENDED").
	WithCode(goerrors.CodeBadRequest)

// ErrUnauthenticated is returned by guards when no identity is attached.
var ErrUnauthenticated = goerrors.New("authorization header is missing, please provide a valid token", goerrors.CategoryAuth).
	WithTextCode("UNAUTHENTICATED").
	WithCode(goerrors.CodeUnauthorized)

// ErrForbidden is returned by guards when an identity is attached but lacks
// the required role.
var ErrForbidden = goerrors.New("you dont have the necessary permission to access this resource", goerrors.CategoryAuthz).
	WithTextCode("FORBIDDEN").
	WithCode(goerrors.CodeForbidden)

// ErrInvalidCredentials collapses unknown-email and wrong-password into one
// uniform message so callers cannot enumerate accounts.
var ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the normal negative result of a password
// comparison. Callers surface it as ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match hash", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidDigest is returned when a stored password digest is structurally
// broken, as opposed to a normal mismatch.
var ErrInvalidDigest = goerrors.New("malformed password digest", goerrors.CategoryBadInput).
	WithTextCode("INVALID_DIGEST").
	WithCode(goerrors.CodeBadRequest)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = goerrors.New("value should not be an empty string", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_STRING").
	WithCode(goerrors.CodeBadRequest)

// ErrEmailTaken is returned on sign-up when the email already exists.
var ErrEmailTaken = goerrors.New("user with the provided email already exists", goerrors.CategoryConflict).
	WithTextCode("EMAIL_TAKEN").
	WithCode(goerrors.CodeConflict)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrProductNotFound is returned when a product does not exist or does not
// belong to the caller.
var ErrProductNotFound = goerrors.New("product not found", goerrors.CategoryNotFound).
	WithTextCode("PRODUCT_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrUserNotFound is returned when an account lookup by id comes back empty.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithTextCode("USER_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

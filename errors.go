package jobboard

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt
var ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryBadInput).
	WithTextCode("EMPTY_STRING")

// ErrMismatchedHashAndPassword is the single verification failure reported
// by the credential hasher, for wrong passwords and malformed hashes alike
var ErrMismatchedHashAndPassword = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned on login for an unknown identifier or a
// wrong password. The two cases are intentionally indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired rejects tokens presented past their expiry instant
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed rejects tokens we cannot parse or whose claims are unusable
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignatureInvalid rejects tokens whose signature does not verify
// against the configured key, including unexpected signing algorithms
var ErrTokenSignatureInvalid = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode("TOKEN_SIGNATURE_INVALID").
	WithCode(errors.CodeUnauthorized)

// ErrInactiveAccount is returned by the access gate once authentication
// succeeded but the account's active flag is off
var ErrInactiveAccount = errors.New("inactive account", errors.CategoryAuthz).
	WithTextCode("INACTIVE_ACCOUNT").
	WithCode(errors.CodeBadRequest)

// ErrDuplicateEmail is the registration conflict for an email already in use
var ErrDuplicateEmail = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode("DUPLICATE_EMAIL").
	WithCode(errors.CodeConflict)

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = errors.New("unable to map claims", errors.CategoryAuth).
	WithTextCode("UNMAPPABLE_CLAIMS").
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

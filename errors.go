package credentials

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Stable text codes surfaced to clients alongside structured errors.
const (
	TextCodeInvalidInput     = "INVALID_INPUT"
	TextCodeDuplicateUser    = "DUPLICATE_USERNAME"
	TextCodeInvalidCreds     = "INVALID_CREDENTIALS"
	TextCodeTokenMissing     = "TOKEN_MISSING"
	TextCodeTokenInvalid     = "TOKEN_INVALID"
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodeInsufficientRole = "INSUFFICIENT_ROLE"
	TextCodeHashingFailure   = "HASHING_FAILURE"
	TextCodeNotFound         = "IDENTITY_NOT_FOUND"
)

// ErrIdentityNotFound is returned by stores when no record matches. It never
// crosses the login boundary: CredentialService collapses it into
// ErrInvalidCredentials so callers cannot probe for usernames.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidInput rejects empty or malformed registration fields.
var ErrInvalidInput = errors.New("username and password are required", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidInput).
	WithCode(errors.CodeBadRequest)

// ErrDuplicateUsername signals a registration conflict on an existing username.
var ErrDuplicateUsername = errors.New("username already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUser).
	WithCode(errors.CodeConflict)

// ErrInvalidCredentials is the single undifferentiated login failure. Unknown
// username and wrong password produce this exact error.
var ErrInvalidCredentials = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrMissingToken is returned when a protected request carries no bearer token.
var ErrMissingToken = errors.New("authorization token required", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures and undecodable tokens.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for tokens with a valid signature past expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrInsufficientRole denies access to a resource requiring a higher role.
var ErrInsufficientRole = errors.New("insufficient role for resource", errors.CategoryAuthz).
	WithTextCode(TextCodeInsufficientRole).
	WithCode(errors.CodeForbidden)

// ErrNoEmptyString rejects empty plaintext passwords before hashing.
var ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidInput).
	WithCode(errors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed or missing token errors
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenInvalid {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

package credentials_test

import (
	"errors"
	"testing"

	credentials "github.com/goliatone/go-credentials"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		category goerrors.Category
		textCode string
	}{
		{"identity not found", credentials.ErrIdentityNotFound, goerrors.CategoryNotFound, credentials.TextCodeNotFound},
		{"invalid input", credentials.ErrInvalidInput, goerrors.CategoryValidation, credentials.TextCodeInvalidInput},
		{"duplicate username", credentials.ErrDuplicateUsername, goerrors.CategoryConflict, credentials.TextCodeDuplicateUser},
		{"invalid credentials", credentials.ErrInvalidCredentials, goerrors.CategoryAuth, credentials.TextCodeInvalidCreds},
		{"missing token", credentials.ErrMissingToken, goerrors.CategoryAuth, credentials.TextCodeTokenMissing},
		{"malformed token", credentials.ErrTokenMalformed, goerrors.CategoryAuth, credentials.TextCodeTokenInvalid},
		{"expired token", credentials.ErrTokenExpired, goerrors.CategoryAuth, credentials.TextCodeTokenExpired},
		{"insufficient role", credentials.ErrInsufficientRole, goerrors.CategoryAuthz, credentials.TextCodeInsufficientRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.True(t, credentials.IsTokenExpiredError(credentials.ErrTokenExpired))
	assert.True(t, credentials.IsTokenExpiredError(errors.New("token is expired")))
	assert.False(t, credentials.IsTokenExpiredError(credentials.ErrTokenMalformed))
	assert.False(t, credentials.IsTokenExpiredError(nil))
}

func TestIsMalformedError(t *testing.T) {
	assert.True(t, credentials.IsMalformedError(credentials.ErrTokenMalformed))
	assert.True(t, credentials.IsMalformedError(errors.New("missing or malformed JWT")))
	assert.False(t, credentials.IsMalformedError(credentials.ErrTokenExpired))
	assert.False(t, credentials.IsMalformedError(nil))
}

func TestExpiredAndMalformedAreDistinct(t *testing.T) {
	assert.NotEqual(t, credentials.ErrTokenExpired.TextCode, credentials.ErrTokenMalformed.TextCode)
	assert.NotEqual(t, credentials.ErrTokenExpired.Message, credentials.ErrTokenMalformed.Message)
}

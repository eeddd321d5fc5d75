package credentials_test

import (
	"strings"
	"testing"

	credentials "github.com/goliatone/go-credentials"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := credentials.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)

			err = credentials.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := credentials.HashPassword("same-input")
	assert.NoError(t, err)
	h2, err := credentials.HashPassword("same-input")
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "$2a$10$"), "hash should carry the fixed cost: %s", h1)
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := credentials.HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "wrongPassword",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Invalid hash",
			password: password,
			hash:     "invalidhash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := credentials.ComparePasswordAndHash(tt.password, tt.hash)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.hash == hash {
					var rich *goerrors.Error
					assert.True(t, goerrors.As(err, &rich))
					assert.Equal(t, credentials.TextCodeInvalidCreds, rich.TextCode)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRandomPasswordHash(t *testing.T) {
	hash1 := credentials.RandomPasswordHash()
	hash2 := credentials.RandomPasswordHash()

	assert.NotEmpty(t, hash1)
	assert.NotEmpty(t, hash2)
	assert.NotEqual(t, hash1, hash2)
}

func TestBcryptHasherImplementsAuthenticator(t *testing.T) {
	var hasher credentials.PasswordAuthenticator = credentials.BcryptHasher{}

	hash, err := hasher.HashPassword("some-password")
	assert.NoError(t, err)
	assert.NoError(t, hasher.ComparePasswordAndHash("some-password", hash))
	assert.Error(t, hasher.ComparePasswordAndHash("other-password", hash))
}

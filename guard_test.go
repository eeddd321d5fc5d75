package credentials_test

import (
	"testing"
	"time"

	credentials "github.com/goliatone/go-credentials"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		scheme  string
		want    string
		wantErr bool
	}{
		{
			name:   "standard bearer header",
			header: "Bearer abc.def.ghi",
			scheme: "Bearer",
			want:   "abc.def.ghi",
		},
		{
			name:   "scheme comparison is case insensitive",
			header: "bearer abc.def.ghi",
			scheme: "Bearer",
			want:   "abc.def.ghi",
		},
		{
			name:   "defaults to bearer scheme",
			header: "Bearer abc.def.ghi",
			scheme: "",
			want:   "abc.def.ghi",
		},
		{
			name:    "empty header",
			header:  "",
			scheme:  "Bearer",
			wantErr: true,
		},
		{
			name:    "scheme only",
			header:  "Bearer",
			scheme:  "Bearer",
			wantErr: true,
		},
		{
			name:    "scheme with trailing space only",
			header:  "Bearer   ",
			scheme:  "Bearer",
			wantErr: true,
		},
		{
			name:    "wrong scheme",
			header:  "Basic dXNlcjpwYXNz",
			scheme:  "Bearer",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := credentials.BearerToken(tt.header, tt.scheme)

			if tt.wantErr {
				require.Error(t, err)
				var rich *goerrors.Error
				require.True(t, goerrors.As(err, &rich))
				assert.Equal(t, credentials.TextCodeTokenMissing, rich.TextCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestGuard_Authenticate(t *testing.T) {
	signingKey := []byte("guard-test-key")
	tokens := credentials.NewTokenService(signingKey, 1, "", nil, nil)
	guard := credentials.NewGuard(tokens)

	identity := credentials.NewIdentity("user-123", "alice", "user")

	t.Run("resolves claims from a valid header", func(t *testing.T) {
		token, err := tokens.Generate(identity)
		require.NoError(t, err)

		claims, err := guard.Authenticate("Bearer " + token)

		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username())
		assert.Equal(t, "user", claims.Role())
	})

	t.Run("missing header yields missing token", func(t *testing.T) {
		claims, err := guard.Authenticate("")

		assert.Nil(t, claims)
		var rich *goerrors.Error
		require.True(t, goerrors.As(err, &rich))
		assert.Equal(t, credentials.TextCodeTokenMissing, rich.TextCode)
	})

	t.Run("garbage token yields malformed", func(t *testing.T) {
		claims, err := guard.Authenticate("Bearer not-a-token")

		assert.Nil(t, claims)
		assert.True(t, credentials.IsMalformedError(err))
	})

	t.Run("expired token yields expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		expired := credentials.NewTokenService(signingKey, 1, "", nil, nil).
			WithClock(func() time.Time { return past })

		token, err := expired.Generate(identity)
		require.NoError(t, err)

		claims, err := guard.Authenticate("Bearer " + token)

		assert.Nil(t, claims)
		assert.True(t, credentials.IsTokenExpiredError(err))
	})

	t.Run("custom scheme", func(t *testing.T) {
		custom := credentials.NewGuard(tokens, credentials.WithGuardScheme("Token"))

		token, err := tokens.Generate(identity)
		require.NoError(t, err)

		claims, err := custom.Authenticate("Token " + token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username())

		_, err = custom.Authenticate("Bearer " + token)
		assert.Error(t, err)
	})
}

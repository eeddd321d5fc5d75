package credentials_test

import (
	"testing"

	credentials "github.com/goliatone/go-credentials"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role  credentials.UserRole
		valid bool
	}{
		{credentials.RoleUser, true},
		{credentials.RoleAdmin, true},
		{"superuser", false},
		{"", false},
		{"Admin", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.valid, credentials.IsValidRole(tt.role))
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		role    credentials.UserRole
		minRole credentials.UserRole
		want    bool
	}{
		{"admin meets admin", credentials.RoleAdmin, credentials.RoleAdmin, true},
		{"admin meets user", credentials.RoleAdmin, credentials.RoleUser, true},
		{"user meets user", credentials.RoleUser, credentials.RoleUser, true},
		{"user does not meet admin", credentials.RoleUser, credentials.RoleAdmin, false},
		{"unknown role never qualifies", "superuser", credentials.RoleUser, false},
		{"unknown minimum never qualifies", credentials.RoleAdmin, "superuser", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, credentials.RoleAtLeast(tt.role, tt.minRole))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, ok := credentials.ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, credentials.RoleAdmin, role)

	_, ok = credentials.ParseRole("overlord")
	assert.False(t, ok)
}

func TestAllRoles(t *testing.T) {
	roles := credentials.AllRoles()

	assert.Equal(t, []credentials.UserRole{credentials.RoleUser, credentials.RoleAdmin}, roles)
}

func TestAuthorize(t *testing.T) {
	t.Run("allows exact role match", func(t *testing.T) {
		claims := &credentials.JWTClaims{UserRole: credentials.RoleAdmin}

		assert.NoError(t, credentials.Authorize(claims, credentials.RoleAdmin))
	})

	t.Run("denies lower role", func(t *testing.T) {
		claims := &credentials.JWTClaims{UserRole: credentials.RoleUser}

		err := credentials.Authorize(claims, credentials.RoleAdmin)

		require.Error(t, err)
		var rich *goerrors.Error
		require.True(t, goerrors.As(err, &rich))
		assert.Equal(t, credentials.TextCodeInsufficientRole, rich.TextCode)
		assert.Equal(t, goerrors.CategoryAuthz, rich.Category)
		assert.Equal(t, credentials.RoleAdmin, rich.Metadata["required_role"])
	})

	t.Run("denies missing claims", func(t *testing.T) {
		err := credentials.Authorize(nil, credentials.RoleAdmin)

		require.Error(t, err)
		var rich *goerrors.Error
		require.True(t, goerrors.As(err, &rich))
		assert.Equal(t, credentials.TextCodeTokenMissing, rich.TextCode)
	})

	t.Run("authorization does not mutate claims", func(t *testing.T) {
		claims := &credentials.JWTClaims{UserRole: credentials.RoleUser}

		_ = credentials.Authorize(claims, credentials.RoleAdmin)
		_ = credentials.Authorize(claims, credentials.RoleAdmin)

		assert.Equal(t, credentials.RoleUser, claims.Role())
	})
}

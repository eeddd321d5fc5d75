package credentials_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	credentials "github.com/goliatone/go-credentials"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type capturedJSON struct {
	status  int
	payload any
}

func captureJSON(ctx *router.MockContext) *capturedJSON {
	out := &capturedJSON{}
	ctx.On("JSON", mock.AnythingOfType("int"), mock.Anything).Run(func(args mock.Arguments) {
		out.status = args.Int(0)
		out.payload = args.Get(1)
	}).Return(nil)
	return out
}

func jsonText(t *testing.T, payload any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(raw)
}

func TestJSONErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials maps to 401", credentials.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"missing token maps to 401", credentials.ErrMissingToken, fiber.StatusUnauthorized},
		{"expired token maps to 401", credentials.ErrTokenExpired, fiber.StatusUnauthorized},
		{"insufficient role maps to 403", credentials.ErrInsufficientRole, fiber.StatusForbidden},
		{"invalid input maps to 400", credentials.ErrInvalidInput, fiber.StatusBadRequest},
		{"duplicate username maps to 409", credentials.ErrDuplicateUsername, fiber.StatusConflict},
		{"not found maps to 404", credentials.ErrIdentityNotFound, fiber.StatusNotFound},
		{"plain error maps to 500", errors.New("database exploded"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := router.NewMockContext()
			captured := captureJSON(ctx)

			err := credentials.JSONErrorHandler(ctx, tt.err)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, captured.status)
		})
	}

	t.Run("internal details never reach the payload", func(t *testing.T) {
		ctx := router.NewMockContext()
		captured := captureJSON(ctx)

		wrapped := goerrors.Wrap(errors.New("dial tcp 10.0.0.5: connection refused"),
			goerrors.CategoryInternal, "query failed")

		err := credentials.JSONErrorHandler(ctx, wrapped)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, captured.status)
		assert.NotContains(t, jsonText(t, captured.payload), "connection refused")
		assert.NotContains(t, jsonText(t, captured.payload), "query failed")
	})

	t.Run("rich errors keep their text code", func(t *testing.T) {
		ctx := router.NewMockContext()
		captured := captureJSON(ctx)

		err := credentials.JSONErrorHandler(ctx, credentials.ErrDuplicateUsername)

		require.NoError(t, err)
		assert.Contains(t, jsonText(t, captured.payload), credentials.TextCodeDuplicateUser)
	})
}

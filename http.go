package credentials

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-credentials/middleware/tokenware"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// errorPayload is the JSON body returned for every failed request.
type errorPayload struct {
	Error struct {
		Message  string         `json:"message"`
		TextCode string         `json:"text_code,omitempty"`
		Metadata map[string]any `json:"metadata,omitempty"`
	} `json:"error"`
}

// JSONErrorHandler renders service errors as JSON with a status derived from
// the error category. Unrecognized errors collapse to a generic 500 so
// internal details never reach the client.
func JSONErrorHandler(ctx router.Context, err error) error {
	status := fiber.StatusInternalServerError
	payload := errorPayload{}
	payload.Error.Message = "internal server error"

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		status = statusForCategory(rich.Category)
		payload.Error.Message = rich.Message
		payload.Error.TextCode = rich.TextCode
		payload.Error.Metadata = rich.Metadata
		if status == fiber.StatusInternalServerError {
			// do not leak wrapped internals
			payload.Error.Message = "internal server error"
			payload.Error.Metadata = nil
		}
	} else if err != nil && err.Error() == tokenware.ErrJWTMissingOrMalformed.Error() {
		status = fiber.StatusUnauthorized
		payload.Error.Message = ErrMissingToken.Message
		payload.Error.TextCode = ErrMissingToken.TextCode
	}

	return ctx.JSON(status, payload)
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return fiber.StatusForbidden
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return fiber.StatusBadRequest
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryRateLimit:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// ProtectedRoute wraps a handler with the bearer-token middleware configured
// from cfg. Claims become available to the handler through GetRouterClaims
// under cfg.GetContextKey().
func ProtectedRoute(cfg Config, validator TokenValidator, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = JSONErrorHandler
	}

	return tokenware.New(tokenware.Config{
		TokenValidator: validatorShim{validator},
		ContextKey:     cfg.GetContextKey(),
		TokenLookup:    cfg.GetTokenLookup(),
		AuthScheme:     cfg.GetAuthScheme(),
		ErrorHandler:   errorHandler,
		ContextEnricher: func(c context.Context, claims tokenware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(c, ac)
			}
			return c
		},
	})
}

// RoleProtectedRoute behaves like ProtectedRoute but also requires claims to
// carry at least minRole.
func RoleProtectedRoute(cfg Config, validator TokenValidator, minRole UserRole, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = JSONErrorHandler
	}

	return tokenware.New(tokenware.Config{
		TokenValidator: validatorShim{validator},
		ContextKey:     cfg.GetContextKey(),
		TokenLookup:    cfg.GetTokenLookup(),
		AuthScheme:     cfg.GetAuthScheme(),
		MinimumRole:    minRole,
		ErrorHandler:   errorHandler,
		ContextEnricher: func(c context.Context, claims tokenware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(c, ac)
			}
			return c
		},
	})
}

// validatorShim adapts the package level TokenValidator to the middleware's
// local interface so the two packages stay decoupled.
type validatorShim struct {
	validator TokenValidator
}

func (v validatorShim) Validate(tokenString string) (tokenware.AuthClaims, error) {
	claims, err := v.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

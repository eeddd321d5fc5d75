package credentials

import (
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-errors"
)

// Defaults applied by NewConfig when an option is not set.
const (
	DefaultSigningMethod = "HS256"
	DefaultContextKey    = "user"
	DefaultTokenLookup   = "header:Authorization"
)

// SimpleConfig is a plain Config implementation. The signing key is the only
// mandatory field: it must come from configuration, never from source.
type SimpleConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration int
	TokenLookup     string
	AuthScheme      string
	Issuer          string
	Audience        []string
}

var _ Config = (*SimpleConfig)(nil)

type ConfigOption func(*SimpleConfig)

func WithIssuer(issuer string) ConfigOption {
	return func(c *SimpleConfig) {
		c.Issuer = issuer
	}
}

func WithAudience(audience ...string) ConfigOption {
	return func(c *SimpleConfig) {
		c.Audience = audience
	}
}

func WithTokenExpiration(hours int) ConfigOption {
	return func(c *SimpleConfig) {
		c.TokenExpiration = hours
	}
}

func WithContextKey(key string) ConfigOption {
	return func(c *SimpleConfig) {
		c.ContextKey = key
	}
}

func WithTokenLookup(lookup string) ConfigOption {
	return func(c *SimpleConfig) {
		c.TokenLookup = lookup
	}
}

// NewConfig builds a SimpleConfig around the given signing key.
func NewConfig(signingKey string, opts ...ConfigOption) (*SimpleConfig, error) {
	if signingKey == "" {
		return nil, errors.New("signing key is required", errors.CategoryValidation)
	}

	c := &SimpleConfig{
		SigningKey:      signingKey,
		SigningMethod:   DefaultSigningMethod,
		ContextKey:      DefaultContextKey,
		TokenExpiration: DefaultTokenExpiration,
		TokenLookup:     DefaultTokenLookup,
		AuthScheme:      DefaultAuthScheme,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// LoadConfigFromEnv reads configuration from AUTH_* environment variables:
// AUTH_SIGNING_KEY (required), AUTH_TOKEN_EXPIRATION (hours), AUTH_ISSUER,
// AUTH_AUDIENCE (comma separated), AUTH_CONTEXT_KEY, AUTH_TOKEN_LOOKUP.
func LoadConfigFromEnv() (*SimpleConfig, error) {
	opts := []ConfigOption{}

	if v := os.Getenv("AUTH_TOKEN_EXPIRATION"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryValidation, "AUTH_TOKEN_EXPIRATION must be an integer")
		}
		opts = append(opts, WithTokenExpiration(hours))
	}

	if v := os.Getenv("AUTH_ISSUER"); v != "" {
		opts = append(opts, WithIssuer(v))
	}

	if v := os.Getenv("AUTH_AUDIENCE"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		opts = append(opts, WithAudience(parts...))
	}

	if v := os.Getenv("AUTH_CONTEXT_KEY"); v != "" {
		opts = append(opts, WithContextKey(v))
	}

	if v := os.Getenv("AUTH_TOKEN_LOOKUP"); v != "" {
		opts = append(opts, WithTokenLookup(v))
	}

	return NewConfig(os.Getenv("AUTH_SIGNING_KEY"), opts...)
}

func (c *SimpleConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *SimpleConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return DefaultSigningMethod
	}
	return c.SigningMethod
}

func (c *SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return DefaultContextKey
	}
	return c.ContextKey
}

func (c *SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return DefaultTokenExpiration
	}
	return c.TokenExpiration
}

func (c *SimpleConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return DefaultTokenLookup
	}
	return c.TokenLookup
}

func (c *SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return DefaultAuthScheme
	}
	return c.AuthScheme
}

func (c *SimpleConfig) GetIssuer() string {
	return c.Issuer
}

func (c *SimpleConfig) GetAudience() []string {
	return c.Audience
}

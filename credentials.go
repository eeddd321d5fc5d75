package credentials

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// CredentialService composes the hasher, store, and token service for the
// register and login use cases.
type CredentialService struct {
	store     UserStore
	hasher    PasswordAuthenticator
	tokens    TokenService
	logger    Logger
	useHashID bool
	dummyHash string
}

type CredentialOption func(*CredentialService)

// WithHasher overrides the default bcrypt hasher.
func WithHasher(hasher PasswordAuthenticator) CredentialOption {
	return func(s *CredentialService) {
		if hasher != nil {
			s.hasher = hasher
		}
	}
}

// WithCredentialLogger overrides the service logger.
func WithCredentialLogger(logger Logger) CredentialOption {
	return func(s *CredentialService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDeterministicIDs derives user IDs from the username via hashid instead
// of random UUIDs. Useful when records must be re-creatable across
// environments.
func WithDeterministicIDs() CredentialOption {
	return func(s *CredentialService) {
		s.useHashID = true
	}
}

// NewCredentialService creates the orchestration service. The dummy hash is
// computed once so the login path can burn a comparable amount of work when
// the username does not exist.
func NewCredentialService(store UserStore, tokens TokenService, opts ...CredentialOption) *CredentialService {
	s := &CredentialService{
		store:     store,
		hasher:    BcryptHasher{},
		tokens:    tokens,
		logger:    defLogger{},
		dummyHash: RandomPasswordHash(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new account with the lowest privilege role. The caller
// cannot pick a role here: elevation goes through GrantRole, which requires an
// admin actor. Returns the public profile only, never the hash.
func (s *CredentialService) Register(ctx context.Context, username, password string) (*PublicProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		ID:           s.newUserID(username),
		Username:     username,
		Role:         RoleUser,
		PasswordHash: hash,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("registered user", "username", created.Username, "role", created.Role)

	return created.Profile(), nil
}

// Login verifies the credentials and issues a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller: both paths return
// ErrInvalidCredentials, and the not-found path still performs a bcrypt
// comparison against a dummy hash to level timing.
func (s *CredentialService) Login(ctx context.Context, username, password string) (string, *PublicProfile, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			_ = s.hasher.ComparePasswordAndHash(password, s.dummyHash)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during login")
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Identity())
	if err != nil {
		s.logger.Error("login token generation failed", "error", err)
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue session token")
	}

	return token, user.Profile(), nil
}

// GrantRole elevates or demotes a user. Only an actor holding the admin role
// may call it, and the backing store must support role updates.
func (s *CredentialService) GrantRole(ctx context.Context, actor AuthClaims, username string, role UserRole) (*PublicProfile, error) {
	if err := Authorize(actor, RoleAdmin); err != nil {
		return nil, err
	}

	if !IsValidRole(role) {
		return nil, ErrInvalidInput.Clone().WithMetadata(map[string]any{
			"role": role,
		})
	}

	granter, ok := s.store.(RoleGranter)
	if !ok {
		return nil, goerrors.New("user store does not support role updates", goerrors.CategoryOperation)
	}

	user, err := granter.UpdateRole(ctx, username, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("granted role", "username", username, "role", role, "actor", actor.UserID())

	return user.Profile(), nil
}

func (s *CredentialService) newUserID(username string) uuid.UUID {
	if s.useHashID {
		if id, err := hashid.NewUUID(username); err == nil {
			return id
		}
	}
	return uuid.New()
}

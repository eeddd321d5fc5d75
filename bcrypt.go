package credentials

import (
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor applied to every password hash.
const BcryptCost = 10

// HashPassword will generate a salted password hash. Each call on the same
// plaintext yields a different output because bcrypt embeds a random salt.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password").
			WithTextCode(TextCodeHashingFailure)
	}

	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. The comparison runs in constant time; a mismatch is
// reported as ErrInvalidCredentials, never as a panic or a distinct error.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to compare password hash")
	}
	return nil
}

// RandomPasswordHash generates a hash for a random throwaway password. Login
// uses it to run a dummy comparison on the user-not-found path so lookup
// misses and password mismatches take comparable time.
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}

// BcryptHasher is the default PasswordAuthenticator
type BcryptHasher struct{}

func (BcryptHasher) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (BcryptHasher) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}

var _ PasswordAuthenticator = BcryptHasher{}

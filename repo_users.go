package credentials

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var updateUserRoleSQL = `UPDATE "users" AS "usr"
SET
	"user_role" = ?,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."username" = ?
RETURNING *;`

// Users is the Bun-backed user repository. It exposes the generic repository
// surface for callers that need criteria queries on top of the store contract.
type Users interface {
	repository.Repository[*User]

	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	UpdateRole(ctx context.Context, username string, role UserRole) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository builds the durable user repository on top of a Bun
// database. Username uniqueness rides on the unique column constraint, which
// keeps the check-and-insert atomic at the store.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// NewUsersStore adapts the Bun repository to the UserStore contract consumed
// by CredentialService. The adapter also satisfies RoleGranter.
func NewUsersStore(db *bun.DB) UserStore {
	return userStoreAdapter{users: NewUsersRepository(db)}
}

func (a *users) FindByUsername(ctx context.Context, username string) (*User, error) {
	return a.FindByUsernameTx(ctx, a.db, username)
}

func (a *users) FindByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where(`?TableAlias."username" = ?`, username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound.Clone().WithMetadata(map[string]any{
				"username": username,
			})
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by username")
	}

	return record, nil
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	prepareUserDefaults(record)

	created, err := a.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername.Clone().WithMetadata(map[string]any{
				"username": record.Username,
			})
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	return created, nil
}

func (a *users) UpdateRole(ctx context.Context, username string, role UserRole) (*User, error) {
	res, err := a.Repository.Raw(ctx, updateUserRoleSQL, role, username)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user role")
	}

	if len(res) == 0 {
		return nil, ErrIdentityNotFound.Clone().WithMetadata(map[string]any{
			"username": username,
		})
	}

	return res[0], nil
}

type userStoreAdapter struct {
	users Users
}

var (
	_ UserStore   = userStoreAdapter{}
	_ RoleGranter = userStoreAdapter{}
)

func (a userStoreAdapter) FindByUsername(ctx context.Context, username string) (*User, error) {
	return a.users.FindByUsername(ctx, username)
}

func (a userStoreAdapter) Create(ctx context.Context, user *User) (*User, error) {
	return a.users.Create(ctx, user)
}

func (a userStoreAdapter) UpdateRole(ctx context.Context, username string, role UserRole) (*User, error) {
	return a.users.UpdateRole(ctx, username, role)
}

func prepareUserDefaults(user *User) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
}

// isUniqueViolation matches the constraint errors the supported drivers emit.
// SQLite reports "UNIQUE constraint failed", Postgres "duplicate key value".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

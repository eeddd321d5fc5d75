package credentials

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the lowest privilege role, assigned on registration
	RoleUser UserRole = "user"
	// RoleAdmin grants access to admin-only resources
	RoleAdmin UserRole = "admin"
)

// User is the identity record. PasswordHash is opaque to every caller: it is
// excluded from JSON output and must never be logged.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Identity returns the token-facing view of the user.
func (u *User) Identity() Identity {
	return authIdentity{
		id:       u.ID.String(),
		username: u.Username,
		role:     string(u.Role),
	}
}

// Profile returns the public projection of the user, safe to serialize.
func (u *User) Profile() *PublicProfile {
	return &PublicProfile{
		Username: u.Username,
		Role:     u.Role,
	}
}

// PublicProfile is what registration and login hand back to callers. It never
// carries the password hash.
type PublicProfile struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

type authIdentity struct {
	id       string
	username string
	role     string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

func (a authIdentity) Role() string {
	return a.role
}

var _ Identity = authIdentity{}

// NewIdentity builds an Identity from raw attributes, useful when adapting
// identities from external systems.
func NewIdentity(id, username, role string) Identity {
	return authIdentity{id: id, username: username, role: role}
}

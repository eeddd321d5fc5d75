package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the transient reference UserStore. Records live for the
// process lifetime only. A single mutex makes the check-then-insert in Create
// atomic, so concurrent registrations of the same username cannot both
// succeed.
type MemoryStore struct {
	mu     sync.RWMutex
	byName map[string]*User
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byName: map[string]*User{},
	}
}

var (
	_ UserStore   = (*MemoryStore)(nil)
	_ RoleGranter = (*MemoryStore)(nil)
)

// FindByUsername looks up a record by exact, case-sensitive username.
func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byName[username]
	if !ok {
		return nil, ErrIdentityNotFound.Clone().WithMetadata(map[string]any{
			"username": username,
		})
	}

	return cloneUser(user), nil
}

// Create inserts the record if the username is absent, otherwise it fails
// with ErrDuplicateUsername. The store assigns an ID and creation timestamp
// when missing.
func (s *MemoryStore) Create(_ context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[user.Username]; exists {
		return nil, ErrDuplicateUsername.Clone().WithMetadata(map[string]any{
			"username": user.Username,
		})
	}

	record := cloneUser(user)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Role == "" {
		record.Role = RoleUser
	}
	if record.CreatedAt == nil {
		now := time.Now()
		record.CreatedAt = &now
	}

	s.byName[record.Username] = record

	return cloneUser(record), nil
}

// UpdateRole changes the role of an existing record.
func (s *MemoryStore) UpdateRole(_ context.Context, username string, role UserRole) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byName[username]
	if !ok {
		return nil, ErrIdentityNotFound.Clone().WithMetadata(map[string]any{
			"username": username,
		})
	}

	user.Role = role
	now := time.Now()
	user.UpdatedAt = &now

	return cloneUser(user), nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

// cloneUser copies a record so callers cannot mutate store state through the
// returned pointer.
func cloneUser(u *User) *User {
	c := *u
	return &c
}

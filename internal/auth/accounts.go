package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AccountStore is the durable credential store. Create must enforce
// username/email uniqueness atomically with the insert: a pre-flight lookup
// is advisory only and two concurrent registrations for the same identifier
// must never both succeed.
type AccountStore interface {
	// FindByUsernameOrEmail matches the identifier exactly (case-sensitive)
	// against either field. Returns ErrAccountNotFound on a miss.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*Account, error)

	// Create inserts the account, filling in ID and CreatedAt. A collision
	// yields a *DuplicateError naming the colliding field.
	Create(ctx context.Context, a *Account) error

	// UpdateRole changes an account's role. There is no web surface for
	// this; it exists for the operator CLI only.
	UpdateRole(ctx context.Context, username string, role Role) error
}

// MemoryAccountStore is the in-process implementation used by tests and the
// dev loop. The mutex makes the duplicate check and insert one atomic step,
// mirroring what the unique indexes give the Mongo store.
type MemoryAccountStore struct {
	mu         sync.Mutex
	byUsername map[string]*Account
	byEmail    map[string]*Account
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		byUsername: map[string]*Account{},
		byEmail:    map[string]*Account{},
	}
}

func (s *MemoryAccountStore) Create(ctx context.Context, a *Account) error {
	if a == nil {
		return errors.New("account is nil")
	}
	username := strings.TrimSpace(a.Username)
	email := strings.TrimSpace(a.Email)
	if username == "" || email == "" {
		return errors.New("username and email required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byUsername[username]; exists {
		return &DuplicateError{Field: "username"}
	}
	if _, exists := s.byEmail[email]; exists {
		return &DuplicateError{Field: "email"}
	}

	clone := *a
	clone.Username = username
	clone.Email = email
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	s.byUsername[username] = &clone
	s.byEmail[email] = &clone

	*a = clone
	return nil
}

func (s *MemoryAccountStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*Account, error) {
	identifier = strings.TrimSpace(identifier)

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.byUsername[identifier]; ok {
		clone := *a
		return &clone, nil
	}
	if a, ok := s.byEmail[identifier]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, ErrAccountNotFound
}

func (s *MemoryAccountStore) UpdateRole(ctx context.Context, username string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byUsername[strings.TrimSpace(username)]
	if !ok {
		return ErrAccountNotFound
	}
	a.Role = role
	return nil
}

// Package contact holds the submitted contact-form records. It is a plain
// record store: create on form submission, list newest-first on the
// admin-only data page.
package contact

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Age       string
	Address   string
	Desc      string
	CreatedAt time.Time
}

type Store interface {
	Create(ctx context.Context, c *Contact) error
	List(ctx context.Context) ([]Contact, error)
}

// MemoryStore backs tests and the dev loop.
type MemoryStore struct {
	mu      sync.Mutex
	records []Contact
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Create(ctx context.Context, c *Contact) error {
	if c == nil {
		return errors.New("contact is nil")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name required")
	}
	clone := *c
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.records = append(s.records, clone)
	s.mu.Unlock()

	*c = clone
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Contact, error) {
	s.mu.Lock()
	out := append([]Contact(nil), s.records...)
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

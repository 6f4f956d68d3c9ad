package contact

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreCreateAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	older := &Contact{Name: "First", Phone: "111", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Contact{Name: "Second", Phone: "222"}
	if err := s.Create(ctx, older); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := s.Create(ctx, newer); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if older.ID == "" || newer.ID == "" {
		t.Fatal("Create should assign IDs")
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Second" {
		t.Fatalf("expected newest first, got %q", records[0].Name)
	}
}

func TestMemoryStoreRejectsEmptyName(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Create(context.Background(), &Contact{Name: "  "}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

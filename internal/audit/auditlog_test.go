package audit

import (
	"sync"
	"testing"
)

func TestAppendAndVerify(t *testing.T) {
	l := New()
	l.Append("registered alice")
	l.Append("login ok: alice")
	l.Append("logout: alice")

	if err := l.Verify(); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got := len(l.Entries()); got != 3 {
		t.Fatalf("expected 3 entries, got %d", got)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	l := New()
	l.Append("registered alice")
	l.Append("login ok: alice")

	l.entries[0].What = "registered mallory"
	if err := l.Verify(); err == nil {
		t.Fatal("expected broken chain after edit")
	}
}

func TestConcurrentAppend(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append("event")
		}()
	}
	wg.Wait()

	if err := l.Verify(); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got := len(l.Entries()); got != 50 {
		t.Fatalf("expected 50 entries, got %d", got)
	}
}

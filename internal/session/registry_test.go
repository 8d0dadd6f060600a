package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/eleven-am/stt-sidecar/internal/engine/enginetest"
	"github.com/eleven-am/stt-sidecar/internal/shared"
)

func TestRegistry_CreateLookupRemove(t *testing.T) {
	reg := NewRegistry(enginetest.New())

	id, err := reg.Create()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	if _, err := reg.Lookup(id); err != nil {
		t.Errorf("lookup failed: %v", err)
	}
	if reg.Count() != 1 {
		t.Errorf("expected 1 session, got %d", reg.Count())
	}

	if _, err := reg.Remove(id); err != nil {
		t.Errorf("remove failed: %v", err)
	}
	if reg.Count() != 0 {
		t.Errorf("expected 0 sessions, got %d", reg.Count())
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := NewRegistry(enginetest.New())

	if _, err := reg.Lookup("sess_missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistry_RemoveIsAtomic(t *testing.T) {
	reg := NewRegistry(enginetest.New())
	id, err := reg.Create()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly one of many concurrent removers may win.
	const removers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, removers)

	wg.Add(removers)
	for i := 0; i < removers; i++ {
		go func() {
			defer wg.Done()
			if _, err := reg.Remove(id); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 1 {
		t.Errorf("expected exactly 1 successful remove, got %d", won)
	}
}

func TestRegistry_IDsAreUnique(t *testing.T) {
	reg := NewRegistry(enginetest.New())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := reg.Create()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate session id: %s", id)
		}
		seen[id] = true
	}
}

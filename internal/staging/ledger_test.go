package staging

import (
	"fmt"
	"sync"
	"testing"
)

func TestAppendPreservesOrder(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 5; i++ {
		l.Append("s1", StagedImage{DisplayName: fmt.Sprintf("img-%d.png", i), Path: fmt.Sprintf("/tmp/img-%d.jpg", i)})
	}

	entries := l.List("s1")
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i, e := range entries {
		want := fmt.Sprintf("img-%d.png", i)
		if e.DisplayName != want {
			t.Fatalf("entry %d: expected %s, got %s", i, want, e.DisplayName)
		}
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	l := NewLedger()
	l.Append("alice", StagedImage{DisplayName: "a.png"})
	l.Append("bob", StagedImage{DisplayName: "b.png"})

	if got := l.Len("alice"); got != 1 {
		t.Fatalf("expected alice to have 1 entry, got %d", got)
	}
	if got := l.List("bob"); len(got) != 1 || got[0].DisplayName != "b.png" {
		t.Fatalf("unexpected bob entries: %#v", got)
	}

	l.Clear("alice")
	if got := l.Len("bob"); got != 1 {
		t.Fatalf("clearing alice must not touch bob, got %d entries", got)
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	l := NewLedger()
	l.Append("s", StagedImage{DisplayName: "first.png"})

	snapshot := l.List("s")
	l.Append("s", StagedImage{DisplayName: "second.png"})

	if len(snapshot) != 1 {
		t.Fatalf("snapshot must be unaffected by later appends, got %d entries", len(snapshot))
	}

	snapshot[0].DisplayName = "mutated"
	if l.List("s")[0].DisplayName != "first.png" {
		t.Fatalf("mutating the snapshot must not affect the ledger")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	l := NewLedger()
	l.Append("s", StagedImage{DisplayName: "a.png"})

	l.Clear("s")
	l.Clear("s")

	if got := l.Len("s"); got != 0 {
		t.Fatalf("expected empty session after clear, got %d", got)
	}
	if got := l.List("s"); got != nil {
		t.Fatalf("expected nil snapshot for empty session, got %#v", got)
	}
}

func TestConcurrentSessions(t *testing.T) {
	l := NewLedger()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			session := fmt.Sprintf("session-%d", id)
			for j := 0; j < 50; j++ {
				l.Append(session, StagedImage{DisplayName: fmt.Sprintf("%d-%d", id, j)})
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		session := fmt.Sprintf("session-%d", i)
		if got := l.Len(session); got != 50 {
			t.Fatalf("expected 50 entries in %s, got %d", session, got)
		}
	}
}

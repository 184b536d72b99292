package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	gate := NewGate("table")

	guard, err := gate.Acquire("alice")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if owner, held := gate.Holder(); !held || owner != "alice" {
		t.Fatalf("holder = %q/%t, want alice/true", owner, held)
	}
	if guard.Resource() != "table" || guard.Owner() != "alice" {
		t.Fatalf("guard exposes %q/%q", guard.Resource(), guard.Owner())
	}

	if _, err := gate.Acquire("bob"); !errors.Is(err, ErrSessionBusy) {
		t.Fatalf("second acquire err = %v, want ErrSessionBusy", err)
	}

	guard.Release()
	if gate.Held() {
		t.Fatalf("gate still held after release")
	}
	if _, err := gate.Acquire("bob"); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	gate := NewGate(1)
	gate.Release()
	if gate.Held() {
		t.Fatalf("releasing a free gate should leave it free")
	}

	if _, err := gate.Acquire("a"); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	gate.Release()
	gate.Release()
	if gate.Held() {
		t.Fatalf("gate held after double release")
	}
}

func TestStaleGuardCannotReleaseNewHolder(t *testing.T) {
	gate := NewGate(struct{}{})

	first, err := gate.Acquire("first")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	gate.Release()

	second, err := gate.Acquire("second")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	first.Release()
	if owner, held := gate.Holder(); !held || owner != "second" {
		t.Fatalf("stale guard freed the gate: holder=%q held=%t", owner, held)
	}
	if first.Active() || !second.Active() {
		t.Fatalf("active flags wrong: first=%t second=%t", first.Active(), second.Active())
	}

	second.Release()
	second.Release()
	if gate.Held() {
		t.Fatalf("gate held after guard release")
	}
}

func TestConcurrentAcquireAdmitsOne(t *testing.T) {
	gate := NewGate(0)

	const callers = 64
	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		busy    atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := gate.Acquire(fmt.Sprintf("caller-%d", i))
			switch {
			case err == nil:
				winners.Add(1)
			case errors.Is(err, ErrSessionBusy):
				busy.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if winners.Load() != 1 || busy.Load() != callers-1 {
		t.Fatalf("winners=%d busy=%d, want 1/%d", winners.Load(), busy.Load(), callers-1)
	}
}

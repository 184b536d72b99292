package session

import (
	"errors"
	"sync"
)

// ErrSessionBusy is returned by Acquire while another owner holds the gate.
var ErrSessionBusy = errors.New("session busy")

// Gate admits one owner at a time to a shared resource.
// Acquisition never blocks. There is no timeout: a holder that never releases
// keeps every other caller out.
type Gate[T any] struct {
	mu       sync.Mutex
	resource T
	holder   string
	held     bool
	epoch    uint64
}

// NewGate returns a free gate guarding resource.
func NewGate[T any](resource T) *Gate[T] {
	return &Gate[T]{resource: resource}
}

// Acquire claims the gate for owner or fails fast with ErrSessionBusy.
func (g *Gate[T]) Acquire(owner string) (*Guard[T], error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held {
		return nil, ErrSessionBusy
	}
	g.held = true
	g.holder = owner
	g.epoch++
	return &Guard[T]{gate: g, owner: owner, epoch: g.epoch}, nil
}

// Release frees the gate whoever holds it. Releasing a free gate is a no-op.
func (g *Gate[T]) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.free()
}

// Holder returns the current owner, if any.
func (g *Gate[T]) Holder() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holder, g.held
}

// Held reports whether an owner holds the gate.
func (g *Gate[T]) Held() bool {
	_, held := g.Holder()
	return held
}

func (g *Gate[T]) free() {
	g.held = false
	g.holder = ""
}

// Guard is the capability returned by a successful Acquire.
type Guard[T any] struct {
	gate  *Gate[T]
	owner string
	epoch uint64

	once sync.Once
}

// Owner returns the owner the guard was issued to.
func (g *Guard[T]) Owner() string {
	return g.owner
}

// Resource returns the guarded resource.
func (g *Guard[T]) Resource() T {
	return g.gate.resource
}

// Release frees the gate at most once, and only if this guard still holds it.
func (g *Guard[T]) Release() {
	g.once.Do(func() {
		g.gate.mu.Lock()
		defer g.gate.mu.Unlock()
		if g.gate.held && g.gate.epoch == g.epoch {
			g.gate.free()
		}
	})
}

// Active reports whether this guard is still the gate's current holder.
func (g *Guard[T]) Active() bool {
	g.gate.mu.Lock()
	defer g.gate.mu.Unlock()
	return g.gate.held && g.gate.epoch == g.epoch
}

package nakama

import (
	"sync"
	"time"

	"blackjack/internal/device"
)

// openSession is a device handle opened over RPC, addressed by ticket session id.
type openSession struct {
	mu        sync.Mutex
	handle    *device.Handle
	owner     string
	expiresAt time.Time
}

// sessionRegistry tracks RPC-opened handles. RPC calls arrive on arbitrary goroutines,
// so each entry carries its own lock around handle use.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*openSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*openSession)}
}

func (r *sessionRegistry) add(id string, s *openSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = s
}

func (r *sessionRegistry) get(id string) (*openSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *sessionRegistry) remove(id string) (*openSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	return s, ok
}

// reap closes sessions whose ticket expired before now and returns their ids.
func (r *sessionRegistry) reap(now time.Time) []string {
	r.mu.Lock()
	var expired []*openSession
	var ids []string
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			expired = append(expired, s)
			ids = append(ids, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.mu.Lock()
		_ = s.handle.Close()
		s.mu.Unlock()
	}
	return ids
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

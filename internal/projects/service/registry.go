package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erikgalindohub/structurecareapp/internal/projects/state"
)

// Registry holds open sessions. A session expires once it has gone unused for the TTL, and
// the least recently used are evicted beyond the size limit.
type Registry struct {
	sessions *expirable.LRU[string, *Session]
}

func NewRegistry(size int, ttl time.Duration) *Registry {
	return &Registry{sessions: expirable.NewLRU[string, *Session](size, nil, ttl)}
}

func (r *Registry) open(st state.State) *Session {
	s := newSession(uuid.NewString(), st)
	r.sessions.Add(s.ID, s)
	return s
}

// Get returns the session and restarts its TTL.
func (r *Registry) Get(id string) (*Session, bool) {
	s, ok := r.sessions.Get(id)
	if ok {
		r.sessions.Add(id, s)
	}
	return s, ok
}

func (r *Registry) Remove(id string) bool {
	return r.sessions.Remove(id)
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}

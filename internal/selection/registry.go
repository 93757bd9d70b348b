package selection

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSessions bounds how many bridges are kept; the least recently used
// one is dropped first.
const DefaultSessions = 1024

// State is the per-session view of a Bridge.
type State struct {
	Captured *Capture `json:"captured"`
	Query    Query    `json:"query"`
}

// Registry keeps one Bridge per UI session; nothing outlives the process.
type Registry struct {
	mu      sync.Mutex
	bridges *lru.Cache[string, *Bridge]
}

func NewRegistry(sessions int) (*Registry, error) {
	bridges, err := lru.New[string, *Bridge](sessions)
	if err != nil {
		return nil, fmt.Errorf("selection: bridge cache: %w", err)
	}
	return &Registry{bridges: bridges}, nil
}

// Do runs f against the session's bridge under the registry lock.
func (r *Registry) Do(session string, f func(b *Bridge)) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bridges.Get(session)
	if !ok {
		b = &Bridge{}
		r.bridges.Add(session, b)
	}
	if f != nil {
		f(b)
	}

	st := State{Query: b.Query()}
	if c, ok := b.Captured(); ok {
		st.Captured = &c
	}
	return st
}

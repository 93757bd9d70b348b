package conversation

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// AtomicCounter is the default Counter: strictly increasing from 1.
type AtomicCounter struct {
	n atomic.Int64
}

func (c *AtomicCounter) Next() int64 {
	return c.n.Add(1)
}

// Store keeps one append-only log per thread. Id allocation and the append
// happen under the same lock, so log order and id order agree.
type Store struct {
	mu      sync.RWMutex
	threads map[string][]Message
	ids     Counter
	now     func() time.Time
}

func NewStore(ids Counter) *Store {
	if ids == nil {
		ids = &AtomicCounter{}
	}
	return &Store{
		threads: make(map[string][]Message),
		ids:     ids,
		now:     time.Now,
	}
}

// Ensure creates an empty thread if it does not exist yet.
func (s *Store) Ensure(threadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(threadID)
}

func (s *Store) ensure(threadID string) {
	if _, ok := s.threads[threadID]; !ok {
		s.threads[threadID] = []Message{}
	}
}

// Append assigns the next id and timestamp and returns the stored message.
func (s *Store) Append(threadID string, msg Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensure(threadID)
	msg.ID = s.ids.Next()
	msg.CreatedAt = s.now()
	s.threads[threadID] = append(s.threads[threadID], msg)
	return msg
}

// Get returns a copy of the thread log; unknown threads read as empty.
func (s *Store) Get(threadID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.threads[threadID]
	if msgs == nil {
		return []Message{}
	}
	return slices.Clone(msgs)
}

func (s *Store) Exists(threadID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.threads[threadID]
	return ok
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, string, Message) error { return nil }

// NopJournal is used when no DATABASE_URL is configured.
var NopJournal Journal = nopJournal{}

package gin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/folio"
)

// Store holds live conversations in memory, keyed by session ID. Entries
// idle for longer than the TTL are dropped by Evict.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex // guards entries
	entries map[string]*entry
}

type entry struct {
	conv     *folio.Conversation
	lastSeen time.Time
}

// NewStore creates an empty Store. now defaults to time.Now when nil.
func NewStore(ttl time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{ttl: ttl, now: now, entries: make(map[string]*entry)}
}

// Add registers conv under its session ID.
func (s *Store) Add(conv *folio.Conversation) string {
	id := conv.Snapshot().ID
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry{conv: conv, lastSeen: s.now()}
	return id
}

// Get returns the conversation for id and marks it as used.
func (s *Store) Get(id string) (*folio.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, folio.ErrSessionNotFound)
	}
	e.lastSeen = s.now()
	return e.conv, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Evict drops sessions idle for longer than the TTL and returns how many were
// removed. A session with a turn in flight is kept.
func (s *Store) Evict() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) && !e.conv.Busy() {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Run calls Evict periodically until ctx is done.
func (s *Store) Run(ctx context.Context, logger *slog.Logger) {
	ticker := time.NewTicker(max(s.ttl/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				logger.DebugContext(ctx, "evicted idle sessions", "count", n, "live", s.Len())
			}
		}
	}
}

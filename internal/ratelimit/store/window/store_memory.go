package window

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"medmcp/internal/ratelimit/models"
	psync "medmcp/pkg/platform/sync"
)

// InMemoryStore keeps one sliding window of request timestamps per key.
// All reads and writes of a key's window happen under that key's shard lock,
// so purge, count and append are one atomic step per client.
type InMemoryStore struct {
	locks *psync.ShardedMutex

	mu      sync.RWMutex // guards the map, not the windows
	windows map[string]*slidingWindow
}

// slidingWindow holds timestamps in ascending order.
type slidingWindow struct {
	timestamps []time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		locks:   psync.NewShardedMutex(),
		windows: make(map[string]*slidingWindow),
	}
}

// Admit purges entries at or before now-window, then admits now if fewer
// than limit entries remain.
func (s *InMemoryStore) Admit(_ context.Context, key string, limit int, window time.Duration, now time.Time) (*models.Decision, error) {
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	w := s.getOrCreate(key)
	w.purge(now, window)

	if len(w.timestamps) < limit {
		w.insert(now)
		return &models.Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - len(w.timestamps),
			ResetAt:   w.timestamps[0].Add(window),
		}, nil
	}

	if len(w.timestamps) == 0 {
		return &models.Decision{Limit: limit, ResetAt: now.Add(window), RetryAfter: window}, nil
	}
	oldest := w.timestamps[0]
	return &models.Decision{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    oldest.Add(window),
		RetryAfter: window - now.Sub(oldest),
	}, nil
}

// Count returns how many requests of key fall inside the window ending at now.
func (s *InMemoryStore) Count(_ context.Context, key string, window time.Duration, now time.Time) (int, error) {
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	s.mu.RLock()
	w, ok := s.windows[key]
	s.mu.RUnlock()
	if !ok {
		return 0, nil
	}
	w.purge(now, window)
	return len(w.timestamps), nil
}

// EvictIdle drops windows with no entries left inside the window ending at
// now. Each candidate is re-checked under its key lock, so a window that an
// admit is using is never removed.
func (s *InMemoryStore) EvictIdle(_ context.Context, window time.Duration, now time.Time) (int, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.windows))
	for k := range s.windows {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	evicted := 0
	for _, key := range keys {
		s.locks.WithLock(key, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			w, ok := s.windows[key]
			if !ok {
				return
			}
			w.purge(now, window)
			if len(w.timestamps) == 0 {
				delete(s.windows, key)
				evicted++
			}
		})
	}
	return evicted, nil
}

// Len reports how many windows are held.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.windows)
}

// Reset forgets a key entirely.
func (s *InMemoryStore) Reset(_ context.Context, key string) error {
	s.locks.Lock(key)
	defer s.locks.Unlock(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

func (s *InMemoryStore) getOrCreate(key string) *slidingWindow {
	s.mu.RLock()
	w, ok := s.windows[key]
	s.mu.RUnlock()
	if ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok = s.windows[key]; ok {
		return w
	}
	w = &slidingWindow{}
	s.windows[key] = w
	return w
}

func (w *slidingWindow) purge(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	idx := sort.Search(len(w.timestamps), func(i int) bool {
		return w.timestamps[i].After(cutoff)
	})
	if idx > 0 {
		w.timestamps = append(w.timestamps[:0], w.timestamps[idx:]...)
	}
}

// insert keeps timestamps sorted; request times captured before a lock wait
// can arrive slightly out of order.
func (w *slidingWindow) insert(t time.Time) {
	idx := sort.Search(len(w.timestamps), func(i int) bool {
		return w.timestamps[i].After(t)
	})
	w.timestamps = slices.Insert(w.timestamps, idx, t)
}

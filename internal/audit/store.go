package audit

import (
	"context"
	"slices"
	"sync"
)

// Sink is the durable destination for audit entries. Append must preserve
// call order for calls made from one goroutine and must not return before
// the entry is durable.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}

// InMemorySink keeps entries in a slice. Used by tests and by deployments
// that ship audit entries through the stdout logger only.
type InMemorySink struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

func (s *InMemorySink) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a copy of everything appended so far, in append order.
func (s *InMemorySink) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Filter returns entries of one event type, in append order.
func (s *InMemorySink) Filter(eventType EventType) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

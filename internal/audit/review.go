package audit

import (
	"cmp"
	"slices"
	"time"
)

// Filter selects entries for review. Zero fields match everything.
type Filter struct {
	Since        time.Time
	EventType    EventType
	FailuresOnly bool
}

func (f Filter) Match(e Entry) bool {
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	if f.FailuresOnly && e.Success {
		return false
	}
	return true
}

type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary aggregates a slice of entries for operators reading the trail.
type Summary struct {
	Total        int       `json:"total"`
	Failures     int       `json:"failures"`
	RateLimited  int       `json:"rate_limited"`
	First        time.Time `json:"first,omitzero"`
	Last         time.Time `json:"last,omitzero"`
	ByEventType  []Count   `json:"by_event_type"`
	TopClientIPs []Count   `json:"top_client_ips"`
	TopUsers     []Count   `json:"top_users"`
}

// Summarize counts the entries matching f. Top lists hold at most limit
// items, ordered by count then key.
func Summarize(entries []Entry, f Filter, limit int) Summary {
	var s Summary
	byType := map[string]int{}
	byIP := map[string]int{}
	byUser := map[string]int{}

	for _, e := range entries {
		if !f.Match(e) {
			continue
		}
		s.Total++
		if !e.Success {
			s.Failures++
		}
		if limited, _ := e.Details["rate_limited"].(bool); limited {
			s.RateLimited++
		}
		if s.First.IsZero() || e.Timestamp.Before(s.First) {
			s.First = e.Timestamp
		}
		if e.Timestamp.After(s.Last) {
			s.Last = e.Timestamp
		}
		byType[string(e.EventType)]++
		if e.IPAddress != "" {
			byIP[e.IPAddress]++
		}
		if e.UserID != nil {
			byUser[*e.UserID]++
		}
	}
	s.ByEventType = ranked(byType, 0)
	s.TopClientIPs = ranked(byIP, limit)
	s.TopUsers = ranked(byUser, limit)
	return s
}

func ranked(m map[string]int, limit int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

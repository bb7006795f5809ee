package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type FileSinkSuite struct {
	suite.Suite
	path    string
	sink    *FileSink
	logBuf  *bytes.Buffer
	baseNow time.Time
}

func TestFileSinkSuite(t *testing.T) {
	suite.Run(t, new(FileSinkSuite))
}

func (s *FileSinkSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "nested", "audit.jsonl")
	s.logBuf = &bytes.Buffer{}
	sink, err := NewFileSink(s.path, slog.New(slog.NewJSONHandler(s.logBuf, nil)))
	s.Require().NoError(err)
	s.sink = sink
	s.baseNow = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
}

func (s *FileSinkSuite) TearDownTest() {
	_ = s.sink.Close()
}

func (s *FileSinkSuite) entry(i int) Entry {
	return Entry{
		Timestamp:    s.baseNow.Add(time.Duration(i) * time.Second),
		EventType:    EventDataAccess,
		UserID:       StringPtr("admin"),
		Action:       fmt.Sprintf("GET-%d", i),
		ResourceType: "scheme",
		Success:      true,
		IPAddress:    "203.0.113.7",
		Details:      map[string]any{"seq": float64(i), "path": "/scheme/available"},
	}
}

func (s *FileSinkSuite) TestAppendPreservesCallOrderAndFields() {
	const n = 25
	for i := 0; i < n; i++ {
		s.Require().NoError(s.sink.Append(context.Background(), s.entry(i)))
	}

	entries, err := ReadEntries(s.path)
	s.Require().NoError(err)
	s.Require().Len(entries, n)
	for i, got := range entries {
		want := s.entry(i)
		s.Equal(want.Timestamp, got.Timestamp)
		s.Equal(want.EventType, got.EventType)
		s.Equal("admin", *got.UserID)
		s.Equal(want.Action, got.Action)
		s.Nil(got.ResourceID)
		s.Equal(want.IPAddress, got.IPAddress)
		s.Equal(want.Details, got.Details)
	}
}

func (s *FileSinkSuite) TestEachEntryIsOneLineWithNullOptionals() {
	e := s.entry(0)
	e.UserID = nil
	e.Details = map[string]any{"note": "line one\nline two"}
	s.Require().NoError(s.sink.Append(context.Background(), e))

	raw, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(1, strings.Count(string(raw), "\n"))

	var doc map[string]any
	s.Require().NoError(json.Unmarshal(bytes.TrimSpace(raw), &doc))
	s.Contains(doc, "user_id")
	s.Nil(doc["user_id"])
	s.Nil(doc["resource_id"])
	s.Equal("2025-04-01T09:00:00Z", doc["timestamp"])
}

func (s *FileSinkSuite) TestUnserializableDetailIsReplaced() {
	e := s.entry(0)
	e.Details = map[string]any{
		"ok":      "kept",
		"channel": make(chan int),
		"nan":     math.NaN(),
	}

	s.Require().NoError(s.sink.Append(context.Background(), e))

	entries, err := ReadEntries(s.path)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("kept", entries[0].Details["ok"])
	s.Equal(UnserializablePlaceholder, entries[0].Details["channel"])
	s.Equal(UnserializablePlaceholder, entries[0].Details["nan"])
	s.Equal("GET-0", entries[0].Action)
	s.Contains(s.logBuf.String(), "placeholder")
	s.Contains(s.logBuf.String(), `"channel"`)
}

func (s *FileSinkSuite) TestConcurrentAppendsNeverInterleave() {
	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				e := s.entry(i)
				e.Details = map[string]any{"writer": float64(w), "seq": float64(i), "pad": strings.Repeat("x", 512)}
				s.NoError(s.sink.Append(context.Background(), e))
			}
		}(w)
	}
	wg.Wait()

	entries, err := ReadEntries(s.path)
	s.Require().NoError(err)
	s.Require().Len(entries, writers*perWriter)

	// per-writer order is preserved even though writers interleave
	last := map[float64]float64{}
	for _, e := range entries {
		w := e.Details["writer"].(float64)
		seq := e.Details["seq"].(float64)
		if prev, ok := last[w]; ok {
			s.Greater(seq, prev)
		}
		last[w] = seq
	}
}

func (s *FileSinkSuite) TestAppendAfterCloseFails() {
	s.Require().NoError(s.sink.Close())
	err := s.sink.Append(context.Background(), s.entry(0))
	s.Error(err)
}

func (s *FileSinkSuite) TestReopenAppendsInsteadOfTruncating() {
	s.Require().NoError(s.sink.Append(context.Background(), s.entry(0)))
	s.Require().NoError(s.sink.Close())

	reopened, err := NewFileSink(s.path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.sink = reopened
	s.Require().NoError(s.sink.Append(context.Background(), s.entry(1)))

	entries, err := ReadEntries(s.path)
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *FileSinkSuite) TestHealthFailsWhenFileRemoved() {
	s.NoError(s.sink.Health(context.Background()))

	s.Require().NoError(os.Remove(s.path))
	s.Error(s.sink.Health(context.Background()))
}

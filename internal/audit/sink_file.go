package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	dErrors "medmcp/pkg/domain-errors"
)

// UnserializablePlaceholder replaces detail values that cannot be encoded.
const UnserializablePlaceholder = "[unserializable]"

// FileSink appends one JSON document per line to a file. A single mutex is
// the serialization point, so concurrent appends never interleave bytes.
type FileSink struct {
	mu     sync.Mutex
	file   *os.File
	path   string
	logger *slog.Logger
}

// NewFileSink opens (or creates) path for appending, creating parent
// directories as needed.
func NewFileSink(path string, logger *slog.Logger) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create audit directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open audit sink: %w", err)
	}
	return &FileSink{file: f, path: path, logger: logger}, nil
}

func (s *FileSink) Path() string {
	return s.path
}

// Append encodes entry as a single line and syncs it to disk before returning.
func (s *FileSink) Append(ctx context.Context, entry Entry) error {
	entry.Timestamp = entry.Timestamp.UTC()
	line, replaced, err := encodeLine(entry)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode audit entry")
	}
	if len(replaced) > 0 && s.logger != nil {
		s.logger.WarnContext(ctx, "audit detail fields replaced with placeholder",
			"fields", replaced,
			"event_type", entry.EventType,
			"action", entry.Action,
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(line); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write audit entry")
	}
	if err := s.file.Sync(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "sync audit sink")
	}
	return nil
}

// Health fails once the sink file has been removed or closed underneath us.
func (s *FileSink) Health(_ context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.file.Stat()
	return err
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// encodeLine marshals entry, substituting the placeholder for any detail
// value that fails to encode. It returns the sorted names of replaced fields.
func encodeLine(entry Entry) ([]byte, []string, error) {
	line, err := json.Marshal(entry)
	if err == nil {
		return append(line, '\n'), nil, nil
	}

	safe := make(map[string]any, len(entry.Details))
	var replaced []string
	for k, v := range entry.Details {
		if _, err := json.Marshal(v); err != nil {
			safe[k] = UnserializablePlaceholder
			replaced = append(replaced, k)
			continue
		}
		safe[k] = v
	}
	sort.Strings(replaced)
	entry.Details = safe

	line, err = json.Marshal(entry)
	if err != nil {
		return nil, replaced, err
	}
	return append(line, '\n'), replaced, nil
}

// ReadEntries parses a JSONL audit file in write order.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

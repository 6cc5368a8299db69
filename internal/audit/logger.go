// Package audit keeps an append-only record of every command the executor
// was asked to run.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"paladin/internal/security"
)

// DefaultMaxOutputLen bounds the output stored per entry.
const DefaultMaxOutputLen = 1000

// Logger appends entries to a JSON Lines file. A nil *Logger is valid and
// records nothing.
type Logger struct {
	path         string
	sessionID    string
	maxOutputLen int
	mu           sync.Mutex
	file         *os.File
}

// Open opens (or creates) the audit file at path.
func Open(path string) (*Logger, error) {
	// Use 0700 to restrict access to owner only (contains command output)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	return &Logger{
		path:         path,
		sessionID:    uuid.New().String(),
		maxOutputLen: DefaultMaxOutputLen,
		file:         f,
	}, nil
}

// Log writes entry as one line. Output is redacted and truncated first.
func (l *Logger) Log(entry *Entry) error {
	if l == nil || entry == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return errors.New("audit log closed")
	}

	entry.SessionID = l.sessionID
	entry.Command = security.Redact(entry.Command)
	entry.Output = TruncateOutput(security.Redact(entry.Output), l.maxOutputLen)

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = l.file.Write(append(line, '\n'))
	return err
}

// Path returns the file the logger writes to.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Query reads the audit file at path and returns the most recent entries
// matching filter, newest first. Unparseable lines are skipped.
func Query(path string, filter QueryFilter) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var matched []*Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		if e.Matches(filter) {
			matched = append(matched, &e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Newest first
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

package audit

import (
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Outcome classifies how a command attempt ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeDenied  Outcome = "denied"
	OutcomeTimeout Outcome = "timeout"
	OutcomeFailed  Outcome = "failed"
)

// Entry represents a single command attempt.
type Entry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id"`
	Command   string        `json:"command"`
	Mode      string        `json:"mode"`
	Outcome   Outcome       `json:"outcome"`
	Reason    string        `json:"reason,omitempty"`
	Output    string        `json:"output"` // Truncated, redacted
	Duration  time.Duration `json:"duration_ms"`
}

// NewEntry creates a new audit entry with a generated ID and timestamp.
func NewEntry(command, mode string) *Entry {
	return &Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Command:   command,
		Mode:      mode,
	}
}

// Complete fills in the result fields after the command ran.
func (e *Entry) Complete(outcome Outcome, output string, duration time.Duration) {
	e.Outcome = outcome
	e.Output = output
	e.Duration = duration
}

// MarshalJSON implements custom JSON marshaling.
func (e *Entry) MarshalJSON() ([]byte, error) {
	type Alias Entry
	return json.Marshal(&struct {
		*Alias
		DurationMs int64 `json:"duration_ms"`
	}{
		Alias:      (*Alias)(e),
		DurationMs: e.Duration.Milliseconds(),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type Alias Entry
	aux := &struct {
		*Alias
		DurationMs int64 `json:"duration_ms"`
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	e.Duration = time.Duration(aux.DurationMs) * time.Millisecond
	return nil
}

// QueryFilter defines criteria for querying audit entries.
type QueryFilter struct {
	Outcome Outcome
	Since   time.Time
	Limit   int
}

// Matches checks if the entry matches the filter criteria.
func (e *Entry) Matches(filter QueryFilter) bool {
	if filter.Outcome != "" && e.Outcome != filter.Outcome {
		return false
	}
	if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
		return false
	}
	return true
}

// TruncateOutput cuts output to at most maxLen bytes, backing off to a rune
// boundary so no character is split.
func TruncateOutput(output string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxOutputLen
	}
	if len(output) <= maxLen {
		return output
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(output[cut]) {
		cut--
	}
	return output[:cut] + "...[truncated]"
}

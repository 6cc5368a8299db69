package security

import (
	"regexp"
	"strings"
	"sync"
)

const redacted = "[REDACTED]"

// SecretRedactor masks credentials in strings before they reach logs or
// error messages.
type SecretRedactor struct {
	mu       sync.RWMutex
	patterns []*regexp.Regexp
	secrets  []string
}

// NewSecretRedactor creates a redactor with default patterns. Each pattern
// captures the non-secret prefix in group 1, which is kept.
func NewSecretRedactor() *SecretRedactor {
	return &SecretRedactor{
		patterns: []*regexp.Regexp{
			// Query parameters: ?key=..., &api_key=...
			regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|token|access_token)=)[^&\s"']+`),

			// key: value / key=value assignments
			regexp.MustCompile(`(?i)((?:api[_-]?key|access[_-]?token|auth[_-]?token|secret)["']?\s*[:=]\s*["']?)[a-zA-Z0-9_\-\.]{8,}`),

			// Bearer tokens
			regexp.MustCompile(`(?i)(Bearer\s+)[a-zA-Z0-9_\-\.]{10,256}`),

			// Google Cloud API keys
			regexp.MustCompile(`()AIza[0-9A-Za-z\-_]{35}`),
		},
	}
}

// AddSecret registers a literal value to mask wherever it appears.
// Values shorter than four characters are ignored.
func (r *SecretRedactor) AddSecret(secret string) {
	if len(secret) < 4 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secrets = append(r.secrets, secret)
}

// Redact masks all detected secrets in text.
func (r *SecretRedactor) Redact(text string) string {
	if text == "" {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := text
	for _, secret := range r.secrets {
		result = strings.ReplaceAll(result, secret, redacted)
	}
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, "${1}"+redacted)
	}
	return result
}

// DefaultRedactor is shared by the client and logging call sites.
var DefaultRedactor = NewSecretRedactor()

// Redact is a convenience function using the default redactor.
func Redact(text string) string {
	return DefaultRedactor.Redact(text)
}

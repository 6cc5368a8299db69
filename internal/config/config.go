package config

import "time"

// Provider names accepted in the provider key.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Execution modes accepted in the mode key.
const (
	ModeStable       = "stable"
	ModeExperimental = "experimental"
)

// Config is the settings record read from config.toml.
// It is treated as immutable once Load returns.
type Config struct {
	Provider        string   `toml:"provider" yaml:"provider"`
	APIKey          string   `toml:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model           string   `toml:"model" yaml:"model"`
	Temperature     float64  `toml:"temperature" yaml:"temperature"`
	TimeoutSeconds  int      `toml:"timeout_seconds" yaml:"timeout_seconds"`
	Mode            string   `toml:"mode" yaml:"mode"`
	AllowedCommands []string `toml:"allowed_commands" yaml:"allowed_commands"`
	Tools           []string `toml:"tools" yaml:"tools"` // reserved

	// Ollama server URL (default: http://localhost:11434)
	OllamaBaseURL string `toml:"ollama_base_url,omitempty" yaml:"ollama_base_url,omitempty"`

	// Step cap checked after the planner.
	MaxSteps int `toml:"max_steps,omitempty" yaml:"max_steps,omitempty"`

	// Deny commands that chain or substitute other commands.
	StrictCommands bool `toml:"strict_commands,omitempty" yaml:"strict_commands,omitempty"`

	// Shell used by the executor (default: /bin/bash)
	Shell string `toml:"shell,omitempty" yaml:"shell,omitempty"`

	// LLM transport settings
	MaxRetries         int    `toml:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty"`
	Proxy              string `toml:"proxy,omitempty" yaml:"proxy,omitempty"`

	// Logging
	LogLevel string `toml:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile  string `toml:"log_file,omitempty" yaml:"log_file,omitempty"`

	// JSONL record of every command the executor was asked to run.
	AuditFile string `toml:"audit_file,omitempty" yaml:"audit_file,omitempty"`
}

// Timeout returns the per-command wall-clock limit.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HTTPTimeout returns the LLM request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// IsExperimental reports whether the experimental policy applies.
// Any mode other than "experimental" is handled as stable.
func (c *Config) IsExperimental() bool {
	return c.Mode == ModeExperimental
}

// ShellPath returns the shell the executor should spawn.
func (c *Config) ShellPath() string {
	if c.Shell == "" {
		return DefaultShell
	}
	return c.Shell
}

// StepLimit returns the configured step cap.
func (c *Config) StepLimit() int {
	if c.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return c.MaxSteps
}

package config

import "time"

// Default configuration values.
const (
	DefaultPath          = "config.toml"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultShell         = "/bin/bash"
	DefaultMaxSteps      = 5
	DefaultHTTPTimeout   = 120 * time.Second
	DefaultLogLevel      = "warn"

	// Used by `config init`
	DefaultModel          = "llama3.2"
	DefaultTemperature    = 0.2
	DefaultTimeoutSeconds = 30
)

// DefaultConfig returns a configuration with defaults for every optional key.
// Required keys are left for the settings document to supply.
func DefaultConfig() *Config {
	return &Config{
		AllowedCommands:    []string{},
		Tools:              []string{},
		OllamaBaseURL:      DefaultOllamaBaseURL,
		MaxSteps:           DefaultMaxSteps,
		Shell:              DefaultShell,
		HTTPTimeoutSeconds: int(DefaultHTTPTimeout / time.Second),
		LogLevel:           DefaultLogLevel,
	}
}

// StarterConfig returns a complete local configuration suitable for a new
// config.toml.
func StarterConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Model = DefaultModel
	cfg.Temperature = DefaultTemperature
	cfg.TimeoutSeconds = DefaultTimeoutSeconds
	cfg.Mode = ModeStable
	return cfg
}

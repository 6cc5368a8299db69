package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ConfigError is a configuration failure category.
type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

const (
	// ErrConfigLoad wraps every failure to read, decode or validate a settings document.
	ErrConfigLoad ConfigError = "config load failed"
)

// Load reads the settings document at path and returns a validated record.
// An empty path means DefaultPath in the working directory.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := DefaultConfig()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigLoad, path, err)
	}

	return cfg, nil
}

// requiredKeys must appear in every settings document.
var requiredKeys = []string{"provider", "model", "temperature", "timeout_seconds", "mode"}

// loadFromFile decodes path into cfg. Keys the record does not know are
// rejected, and so is a document missing any of requiredKeys.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return err
	}

	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return fmt.Errorf("failed to parse config file %s: %s", path, strict.String())
			}
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	missing, err := missingKeys(data, isYAML(path))
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("config file %s is missing required keys: %s", path, strings.Join(missing, ", "))
	}
	return nil
}

// missingKeys returns the required keys absent from the top level of data.
func missingKeys(data []byte, asYAML bool) ([]string, error) {
	present := map[string]any{}
	var err error
	if asYAML {
		err = yaml.Unmarshal(data, &present)
	} else {
		err = toml.Unmarshal(data, &present)
	}
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// loadFromEnv applies environment overrides on top of the file values.
func loadFromEnv(cfg *Config) {
	// Priority: PALADIN_API_KEY > GEMINI_API_KEY > file
	if apiKey := os.Getenv("PALADIN_API_KEY"); apiKey != "" {
		cfg.APIKey = apiKey
	} else if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" && cfg.Provider == ProviderGemini {
		cfg.APIKey = apiKey
	}

	if model := os.Getenv("PALADIN_MODEL"); model != "" {
		cfg.Model = model
	}

	if host := os.Getenv("OLLAMA_HOST"); host != "" && cfg.OllamaBaseURL == DefaultOllamaBaseURL {
		if !strings.Contains(host, "://") {
			host = "http://" + host
		}
		cfg.OllamaBaseURL = host
	}
}

// Validate checks the invariants of the record. The provider name and its
// credential are checked when the client is constructed.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0.0 and 1.0, got %v", c.Temperature)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be a positive integer, got %d", c.TimeoutSeconds)
	}

	switch c.Mode {
	case ModeStable, ModeExperimental:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeStable, ModeExperimental, c.Mode)
	}

	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}

// Save writes the record to path. The file may contain an API key, so it is
// written owner-only.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	// Write to temp file then rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

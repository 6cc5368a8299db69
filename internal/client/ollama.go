package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"paladin/internal/config"
	"paladin/internal/logging"

	"github.com/ollama/ollama/api"
)

// OllamaConfig holds configuration for the Ollama API client.
type OllamaConfig struct {
	BaseURL     string  // Default: "http://localhost:11434"
	Model       string  // e.g., "llama3.2", "qwen2.5-coder"
	Temperature float32 // Sampling temperature
	Retry       RetryConfig
}

// OllamaClient talks to a local Ollama server through /api/generate.
type OllamaClient struct {
	client *api.Client
	config OllamaConfig
}

// NewOllamaClient creates a new Ollama API client on top of httpClient.
func NewOllamaClient(cfg OllamaConfig, httpClient *http.Client) (*OllamaClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name is required", ErrProviderConstruction)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultOllamaBaseURL
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid Ollama base URL: %w", ErrProviderConstruction, err)
	}

	// Warn if using unencrypted HTTP to a non-localhost host
	if baseURL.Scheme == "http" {
		host := baseURL.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			logging.Warn("Ollama connection uses unencrypted HTTP to remote host",
				"host", host)
		}
	}

	return &OllamaClient{
		client: api.NewClient(baseURL, httpClient),
		config: cfg,
	}, nil
}

// Provider returns "ollama".
func (c *OllamaClient) Provider() string { return config.ProviderOllama }

// Model returns the model name.
func (c *OllamaClient) Model() string { return c.config.Model }

// Invoke runs a single non-streaming generation.
func (c *OllamaClient) Invoke(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, c.Provider(), c.config.Retry, func() (string, error) {
		return c.generate(ctx, prompt)
	})
}

func (c *OllamaClient) generate(ctx context.Context, prompt string) (string, error) {
	req := &api.GenerateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: Ptr(false),
		Options: map[string]any{
			"temperature": c.config.Temperature,
		},
	}

	logging.Debug("ollama generate", "model", c.config.Model, "prompt_chars", len(prompt))

	// With stream=false the server answers with one object; the callback
	// still runs per decoded object, so accumulate.
	var sb strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", c.wrapError(err)
	}
	return sb.String(), nil
}

func (c *OllamaClient) wrapError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return &APIError{
			Provider:   c.Provider(),
			StatusCode: statusErr.StatusCode,
			Message:    statusErr.ErrorMessage,
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &TransportError{Provider: c.Provider(), Op: "request", Err: err}
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"paladin/internal/config"
	"paladin/internal/logging"
	"paladin/internal/security"

	"google.golang.org/genai"
)

// DefaultGeminiBaseURL is the Generative Language API endpoint.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// maxErrorBody bounds how much of an error response is kept in APIError.
const maxErrorBody = 2048

// GeminiConfig holds configuration for the Gemini REST client.
type GeminiConfig struct {
	APIKey      string
	BaseURL     string // Default: DefaultGeminiBaseURL
	Model       string
	Temperature float32
	Retry       RetryConfig
}

// GeminiClient calls models/<model>:generateContent with the key passed as a
// query parameter. Request and response bodies use the genai wire types.
type GeminiClient struct {
	httpClient *http.Client
	config     GeminiConfig
}

// generateContentRequest is the body of a generateContent call.
type generateContentRequest struct {
	Contents         []*genai.Content        `json:"contents"`
	GenerationConfig *genai.GenerationConfig `json:"generationConfig"`
}

// NewGeminiClient creates a new Gemini client on top of httpClient.
func NewGeminiClient(cfg GeminiConfig, httpClient *http.Client) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w for Gemini", ErrMissingCredential)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name is required", ErrProviderConstruction)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}

	// The key travels in the URL; keep it out of logs and errors
	security.DefaultRedactor.AddSecret(cfg.APIKey)

	return &GeminiClient{
		httpClient: httpClient,
		config:     cfg,
	}, nil
}

// Provider returns "gemini".
func (c *GeminiClient) Provider() string { return config.ProviderGemini }

// Model returns the model name.
func (c *GeminiClient) Model() string { return c.config.Model }

// Invoke runs a single generateContent call.
func (c *GeminiClient) Invoke(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, c.Provider(), c.config.Retry, func() (string, error) {
		return c.generate(ctx, prompt)
	})
}

func (c *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.config.BaseURL, "/"),
		url.PathEscape(c.config.Model),
		url.QueryEscape(c.config.APIKey))
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateContentRequest{
		Contents: []*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		GenerationConfig: &genai.GenerationConfig{
			Temperature: Ptr(c.config.Temperature),
		},
	})
	if err != nil {
		return "", &TransportError{Provider: c.Provider(), Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Provider: c.Provider(), Op: "request", Err: redactErr(err)}
	}
	req.Header.Set("Content-Type", "application/json")

	logging.Debug("gemini generateContent", "model", c.config.Model, "prompt_chars", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", &TransportError{Provider: c.Provider(), Op: "request", Err: redactErr(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &APIError{
			Provider:   c.Provider(),
			StatusCode: resp.StatusCode,
			Message:    security.Redact(strings.TrimSpace(string(msg))),
		}
	}

	var parsed genai.GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &TransportError{Provider: c.Provider(), Op: "decode", Err: err}
	}

	return firstPartText(&parsed), nil
}

// firstPartText returns candidates[0].content.parts[0].text, or "" when any
// step of the path is absent.
func firstPartText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return ""
	}
	return content.Parts[0].Text
}

// redactErr strips the API key from errors that embed the request URL.
func redactErr(err error) error {
	return errors.New(security.Redact(err.Error()))
}

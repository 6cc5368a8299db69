package client

import (
	"fmt"
	"net/http"

	"paladin/internal/config"
	"paladin/internal/logging"
)

// NewClient creates the client variant named by cfg.Provider. httpClient is
// shared by every call; nil builds one from cfg.
func NewClient(cfg *config.Config, httpClient *http.Client) (Client, error) {
	if httpClient == nil {
		var err error
		httpClient, err = NewHTTPClient(cfg.HTTPTimeout(), cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProviderConstruction, err)
		}
	}

	retry := DefaultRetryConfig(cfg.MaxRetries)

	logging.Debug("creating client",
		"provider", cfg.Provider,
		"model", cfg.Model)

	switch cfg.Provider {
	case config.ProviderOllama:
		c, err := NewOllamaClient(OllamaConfig{
			BaseURL:     cfg.OllamaBaseURL,
			Model:       cfg.Model,
			Temperature: float32(cfg.Temperature),
			Retry:       retry,
		}, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderGemini:
		c, err := NewGeminiClient(GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: float32(cfg.Temperature),
			Retry:       retry,
		}, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
